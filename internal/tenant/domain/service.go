package domain

import "context"

type Service interface {
	GetSettings(ctx context.Context) (*BusinessSettings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*BusinessSettings, error)
}

type UpdateSettingsRequest struct {
	BusinessName   *string `json:"business_name,omitempty"`
	Country        *string `json:"country,omitempty"`
	CurrencyCode   *string `json:"currency_code,omitempty"`
	CurrencySymbol *string `json:"currency_symbol,omitempty"`
	InvoicePrefix  *string `json:"invoice_prefix,omitempty"`
	InvoiceFooter  *string `json:"invoice_footer,omitempty"`
}
