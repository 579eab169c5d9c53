package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, tenantID snowflake.ID, country string) ([]domain.TaxSlab, error) {
	var slabs []domain.TaxSlab
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND country = ?", tenantID, country).
		Order("sort_order, rate").
		Find(&slabs).Error
	if err != nil {
		return nil, err
	}
	return slabs, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id snowflake.ID) (*domain.TaxSlab, error) {
	var slab domain.TaxSlab
	err := r.db.WithContext(ctx).
		First(&slab, "tenant_id = ? AND id = ?", tenantID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slab, nil
}

func (r *repository) FindByIDs(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]*domain.TaxSlab, error) {
	result := make(map[snowflake.ID]*domain.TaxSlab, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var slabs []domain.TaxSlab
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&slabs).Error
	if err != nil {
		return nil, err
	}
	for i := range slabs {
		result[slabs[i].ID] = &slabs[i]
	}
	return result, nil
}

func (r *repository) Save(ctx context.Context, slab *domain.TaxSlab) error {
	return r.db.WithContext(ctx).Save(slab).Error
}

func (r *repository) ClearOtherDefaults(ctx context.Context, tenantID snowflake.ID, country string, keep snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.TaxSlab{}).
		Where("tenant_id = ? AND country = ? AND id != ?", tenantID, country, keep).
		Update("is_default", false).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.TaxSlab{}, "tenant_id = ? AND id = ?", tenantID, id).Error
}

func (r *repository) CountByCountry(ctx context.Context, tenantID snowflake.ID, country string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.TaxSlab{}).
		Where("tenant_id = ? AND country = ?", tenantID, country).
		Count(&count).Error
	return count, err
}
