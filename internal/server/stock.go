package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/shopspring/decimal"
)

type adjustStockRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

func (s *Server) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	productID, err := tenantctx.ParseID(req.ProductID)
	if err != nil {
		AbortWithError(c, stockdomain.ErrProductNotFound)
		return
	}

	movement, err := s.stockSvc.Adjust(c.Request.Context(), stockdomain.AdjustRequest{
		ProductID: productID,
		Type:      stockdomain.MovementType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Quantity:  req.Quantity,
		Reference: strings.TrimSpace(req.Reference),
		Notes:     strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": movement})
}

func (s *Server) ListStockMovements(c *gin.Context) {
	var query struct {
		ProductID string `form:"product_id"`
		Limit     int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var productID *snowflake.ID
	if query.ProductID != "" {
		id, err := tenantctx.ParseID(query.ProductID)
		if err != nil {
			AbortWithError(c, stockdomain.ErrProductNotFound)
			return
		}
		productID = &id
	}

	movements, err := s.stockSvc.ListMovements(c.Request.Context(), stockdomain.ListRequest{
		ProductID: productID,
		Limit:     query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movements})
}
