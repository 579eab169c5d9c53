package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/saurabhwebdev/openpos/internal/config"
	salesdomain "github.com/saurabhwebdev/openpos/internal/sales/domain"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSalesService struct {
	createErr error
	created   *salesdomain.Invoice
	lastCtx   context.Context
}

func (f *fakeSalesService) Create(ctx context.Context, req salesdomain.CreateInvoiceRequest) (*salesdomain.Invoice, error) {
	f.lastCtx = ctx
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeSalesService) Get(ctx context.Context, id snowflake.ID) (*salesdomain.Invoice, error) {
	return nil, salesdomain.ErrInvoiceNotFound
}

func (f *fakeSalesService) List(ctx context.Context, req salesdomain.ListRequest) ([]salesdomain.Invoice, error) {
	return nil, nil
}

func (f *fakeSalesService) ListHeld(ctx context.Context) ([]salesdomain.Invoice, error) {
	return nil, nil
}

func (f *fakeSalesService) Cancel(ctx context.Context, id snowflake.ID) (*salesdomain.Invoice, error) {
	return nil, salesdomain.ErrAlreadyCancelled
}

func (f *fakeSalesService) Resume(ctx context.Context, id snowflake.ID) (*salesdomain.ResumedOrder, error) {
	return nil, salesdomain.ErrNotHeld
}

func (f *fakeSalesService) PreviewTotals(ctx context.Context, req salesdomain.PreviewRequest) (*salesdomain.CartTotals, error) {
	return &salesdomain.CartTotals{}, nil
}

func newTestServer(t *testing.T, salesSvc salesdomain.Service) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := config.Config{Environment: "test"}
	engine := NewEngine(cfg, zap.NewNop())

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewServer(ServerParams{
		Gin:      engine,
		Cfg:      cfg,
		GenID:    node,
		SalesSvc: salesSvc,
	})
}

func doRequest(srv *Server, method, path, tenantID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestAPI_RequiresTenantHeader(t *testing.T) {
	srv := newTestServer(t, &fakeSalesService{})

	rec := doRequest(srv, http.MethodGet, "/api/invoices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/invoices", "not-a-number", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_TenantHeaderReachesContext(t *testing.T) {
	fake := &fakeSalesService{created: &salesdomain.Invoice{InvoiceNumber: "INV-000001"}}
	srv := newTestServer(t, fake)

	body, _ := json.Marshal(salesdomain.CreateInvoiceRequest{
		Status: salesdomain.StatusHeld,
		Lines: []salesdomain.CartLine{
			{ProductID: 7, Quantity: decimal.RequireFromString("1")},
		},
	})
	rec := doRequest(srv, http.MethodPost, "/api/invoices", "12345", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	tenantID, ok := tenantctx.TenantIDFromContext(fake.lastCtx)
	require.True(t, ok)
	assert.EqualValues(t, 12345, tenantID)

	var resp struct {
		Data salesdomain.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INV-000001", resp.Data.InvoiceNumber)
}

func TestAPI_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"insufficient stock", stockdomain.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{"empty cart", salesdomain.ErrEmptyCart, http.StatusBadRequest, "validation_error"},
		{"invalid payment", salesdomain.ErrInvalidPayment, http.StatusBadRequest, "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeSalesService{createErr: tc.err})

			body, _ := json.Marshal(salesdomain.CreateInvoiceRequest{Status: salesdomain.StatusCompleted})
			rec := doRequest(srv, http.MethodPost, "/api/invoices", "12345", body)
			assert.Equal(t, tc.status, rec.Code)

			var resp struct {
				Error struct {
					Type string `json:"type"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.typ, resp.Error.Type)
		})
	}
}

func TestAPI_NotFoundMapping(t *testing.T) {
	srv := newTestServer(t, &fakeSalesService{})

	rec := doRequest(srv, http.MethodGet, "/api/invoices/99999", "12345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/api/invoices/99999/cancel", "12345", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
