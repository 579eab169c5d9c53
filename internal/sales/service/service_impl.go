package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/saurabhwebdev/openpos/internal/product/domain"
	"github.com/saurabhwebdev/openpos/internal/sales/domain"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	taxservice "github.com/saurabhwebdev/openpos/internal/tax/service"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParams struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Products productdomain.Repository
	TaxSlabs taxdomain.Repository
	Tenants  tenantdomain.Repository
	Ledger   stockdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	products productdomain.Repository
	taxSlabs taxdomain.Repository
	tenants  tenantdomain.Repository
	ledger   stockdomain.Service
}

func NewService(p ServiceParams) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("sales.service"),
		genID:    p.GenID,
		products: p.Products,
		taxSlabs: p.TaxSlabs,
		tenants:  p.Tenants,
		ledger:   p.Ledger,
	}
}

// pricedLine pairs a requested cart line with the catalog rows it resolves
// to. Everything money-related flows from here, never from the request.
type pricedLine struct {
	product  *productdomain.Product
	slab     *taxdomain.TaxSlab
	quantity decimal.Decimal
	subtotal decimal.Decimal
}

func (s *Service) priceCart(ctx context.Context, tenantID snowflake.ID, lines []domain.CartLine) ([]pricedLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ids := make([]snowflake.ID, 0, len(lines))
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	slabIDs := make([]snowflake.ID, 0, len(lines))
	for _, p := range products {
		if p.TaxSlabID != nil {
			slabIDs = append(slabIDs, *p.TaxSlabID)
		}
	}
	slabs := map[snowflake.ID]*taxdomain.TaxSlab{}
	if len(slabIDs) > 0 {
		slabs, err = s.taxSlabs.FindByIDs(ctx, tenantID, slabIDs)
		if err != nil {
			return nil, err
		}
	}

	priced := make([]pricedLine, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok || !product.IsActive {
			return nil, productdomain.ErrNotFound
		}
		var slab *taxdomain.TaxSlab
		if product.TaxSlabID != nil {
			slab = slabs[*product.TaxSlabID]
		}
		priced = append(priced, pricedLine{
			product:  product,
			slab:     slab,
			quantity: line.Quantity,
			subtotal: product.SellingPrice.Mul(line.Quantity),
		})
	}
	return priced, nil
}

// computeTotals applies the invoice-level discount and extracts the inclusive
// tax. Prices already contain tax, so total equals subtotal minus discount;
// the discount shrinks the tax base along with it.
func computeTotals(priced []pricedLine, discountType *domain.DiscountType, discountValue decimal.Decimal) (*domain.CartTotals, error) {
	subtotal := decimal.Zero
	for _, line := range priced {
		subtotal = subtotal.Add(line.subtotal)
	}

	discountAmount := decimal.Zero
	if discountType != nil {
		if discountValue.IsNegative() {
			return nil, domain.ErrInvalidDiscount
		}
		switch *discountType {
		case domain.DiscountFixed:
			// a fixed discount above the subtotal clamps to it; the
			// sale bottoms out at a zero total, never a negative one
			discountAmount = discountValue
			if discountAmount.GreaterThan(subtotal) {
				discountAmount = subtotal
			}
		case domain.DiscountPercentage:
			if discountValue.GreaterThan(decimal.NewFromInt(100)) {
				return nil, domain.ErrInvalidDiscount
			}
			discountAmount = subtotal.Mul(discountValue).Div(decimal.NewFromInt(100))
		default:
			return nil, domain.ErrInvalidDiscount
		}
	} else if !discountValue.IsZero() {
		return nil, domain.ErrInvalidDiscount
	}

	afterDiscount := subtotal.Sub(discountAmount)

	taxLines := make([]taxservice.Line, 0, len(priced))
	for _, line := range priced {
		taxLines = append(taxLines, taxservice.Line{Subtotal: line.subtotal, Slab: line.slab})
	}
	breakdown := taxservice.Breakdown(taxLines, afterDiscount, subtotal)
	for i := range breakdown {
		breakdown[i].Amount = breakdown[i].Amount.Round(2)
	}

	// The subtotal and discount are rounded once and the total derived
	// from the rounded pair, so the stored figures agree to the cent.
	roundedSubtotal := subtotal.Round(2)
	roundedDiscount := discountAmount.Round(2)
	total := roundedSubtotal.Sub(roundedDiscount)

	return &domain.CartTotals{
		Subtotal:       roundedSubtotal,
		DiscountAmount: roundedDiscount,
		AfterDiscount:  total,
		TaxAmount:      taxservice.TotalTax(breakdown),
		TaxBreakdown:   breakdown,
		Total:          total,
	}, nil
}

func (s *Service) PreviewTotals(ctx context.Context, req domain.PreviewRequest) (*domain.CartTotals, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	priced, err := s.priceCart(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}
	return computeTotals(priced, req.DiscountType, req.DiscountValue)
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	actor, ok := tenantctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	if req.Status != domain.StatusCompleted && req.Status != domain.StatusHeld {
		return nil, domain.ErrInvalidStatus
	}

	priced, err := s.priceCart(ctx, actor.TenantID, req.Lines)
	if err != nil {
		return nil, err
	}
	totals, err := computeTotals(priced, req.DiscountType, req.DiscountValue)
	if err != nil {
		return nil, err
	}

	tendered := decimal.Zero
	change := decimal.Zero
	if req.Status == domain.StatusCompleted {
		if req.PaymentMethod == nil || !req.PaymentMethod.Valid() {
			return nil, domain.ErrInvalidPayment
		}
		if *req.PaymentMethod == domain.PaymentCash {
			tendered = req.AmountTendered
			if tendered.LessThan(totals.Total) {
				return nil, domain.ErrInvalidPayment
			}
			change = tendered.Sub(totals.Total).Round(2)
		} else {
			tendered = totals.Total
		}
	}

	prefix := tenantdomain.DefaultInvoicePrefix
	settings, err := s.tenants.GetSettings(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		prefix = settings.Prefix()
	}

	breakdownJSON, err := json.Marshal(totals.TaxBreakdown)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ratio := decimal.NewFromInt(1)
	if !totals.Subtotal.IsZero() {
		ratio = totals.AfterDiscount.Div(totals.Subtotal)
	}

	invoice := &domain.Invoice{
		ID:             s.genID.Generate(),
		TenantID:       actor.TenantID,
		Status:         req.Status,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		Subtotal:       totals.Subtotal,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		TaxBreakdown:   string(breakdownJSON),
		Total:          totals.Total,
		AmountTendered: tendered,
		ChangeDue:      change,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Status == domain.StatusCompleted {
		invoice.PaymentMethod = req.PaymentMethod
	}
	if actor.UserID != 0 {
		userID := actor.UserID
		invoice.CreatedBy = &userID
	}

	for _, line := range priced {
		rate := decimal.Zero
		taxName := ""
		var slabID *snowflake.ID
		if line.slab != nil {
			rate = line.slab.Rate
			taxName = line.slab.Name
			id := line.slab.ID
			slabID = &id
		}
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			TenantID:    actor.TenantID,
			InvoiceID:   invoice.ID,
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			SKU:         line.product.SKU,
			Quantity:    line.quantity,
			UnitPrice:   line.product.SellingPrice,
			Subtotal:    line.subtotal.Round(2),
			TaxSlabID:   slabID,
			TaxName:     taxName,
			TaxRate:     rate,
			TaxAmount:   taxservice.ExtractInclusiveTax(line.subtotal.Mul(ratio), rate).Round(2),
			CreatedAt:   now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(ctx, tx, actor.TenantID)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = formatInvoiceNumber(prefix, seq)

		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		// Held orders reserve nothing; stock leaves only on completion,
		// inside the same transaction as the invoice rows.
		if req.Status == domain.StatusCompleted {
			for _, line := range priced {
				_, err := s.ledger.ApplyInTx(ctx, tx, stockdomain.AdjustRequest{
					ProductID: line.product.ID,
					Type:      stockdomain.MovementOut,
					Quantity:  line.quantity,
					Reference: "Invoice " + invoice.InvoiceNumber,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("status", string(invoice.Status)),
		zap.String("total", invoice.Total.String()),
	)
	return invoice, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Invoice, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		query = query.Where("created_at >= ? AND created_at < ?", day, day.Add(24*time.Hour))
	}

	var invoices []domain.Invoice
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) ListHeld(ctx context.Context) ([]domain.Invoice, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var invoices []domain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND status = ?", tenantID, domain.StatusHeld).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Cancel flips the status and nothing else. A completed invoice's stock
// deduction stands; returns go through a separate IN adjustment so the
// movement history stays truthful.
func (s *Service) Cancel(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&invoice).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrInvoiceNotFound
			}
			return err
		}
		if invoice.Status == domain.StatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		now := time.Now().UTC()
		err = tx.Model(&domain.Invoice{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Updates(map[string]interface{}{"status": domain.StatusCancelled, "updated_at": now}).Error
		if err != nil {
			return err
		}
		invoice.Status = domain.StatusCancelled
		invoice.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return &invoice, nil
}

// Resume closes out a held order and rebuilds its cart against the live
// catalog. Products that were deleted or deactivated since the hold are
// dropped; everything is repriced at current prices and slabs. The status
// flip is the last step: a resume that fails to reprice leaves the hold
// intact and resumable.
func (s *Service) Resume(ctx context.Context, id snowflake.ID) (*domain.ResumedOrder, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	if invoice.Status != domain.StatusHeld {
		return nil, domain.ErrNotHeld
	}

	lines := make([]domain.CartLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	lines = s.dropMissingProducts(ctx, tenantID, lines)

	resumed := &domain.ResumedOrder{
		CancelledInvoice: &invoice,
		CustomerName:     invoice.CustomerName,
		CustomerPhone:    invoice.CustomerPhone,
		Notes:            invoice.Notes,
		Lines:            lines,
	}

	if len(lines) > 0 {
		priced, err := s.priceCart(ctx, tenantID, lines)
		if err != nil {
			return nil, err
		}
		totals, err := computeTotals(priced, invoice.DiscountType, invoice.DiscountValue)
		if err != nil {
			// the held discount may no longer fit the repriced cart
			totals, err = computeTotals(priced, nil, decimal.Zero)
			if err != nil {
				return nil, err
			}
		}
		resumed.Totals = *totals
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Invoice
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&current).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrInvoiceNotFound
			}
			return err
		}
		// a concurrent resume or cancel may have beaten us here
		if current.Status != domain.StatusHeld {
			return domain.ErrNotHeld
		}

		now := time.Now().UTC()
		err = tx.Model(&domain.Invoice{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Updates(map[string]interface{}{"status": domain.StatusCancelled, "updated_at": now}).Error
		if err != nil {
			return err
		}
		invoice.Status = domain.StatusCancelled
		invoice.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("held order resumed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("lines", len(lines)),
	)
	return resumed, nil
}

func (s *Service) dropMissingProducts(ctx context.Context, tenantID snowflake.ID, lines []domain.CartLine) []domain.CartLine {
	ids := make([]snowflake.ID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return lines
	}
	kept := lines[:0]
	for _, line := range lines {
		if p, ok := products[line.ProductID]; ok && p.IsActive {
			kept = append(kept, line)
		}
	}
	return kept
}
