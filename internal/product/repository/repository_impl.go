package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/product/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, tenantID snowflake.ID, filter domain.ListFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if filter.LowStock {
		query = query.Where("current_stock <= min_stock_level")
	}

	var products []domain.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		First(&product, "tenant_id = ? AND id = ?", tenantID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByIDs(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]*domain.Product, error) {
	result := make(map[snowflake.ID]*domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	for i := range products {
		result[products[i].ID] = &products[i]
	}
	return result, nil
}

func (r *repository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Product{}, "tenant_id = ? AND id = ?", tenantID, id).Error
}
