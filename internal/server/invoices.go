package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	salesdomain "github.com/saurabhwebdev/openpos/internal/sales/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req salesdomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	invoice, err := s.salesSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query salesdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	invoices, err := s.salesSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) ListHeldInvoices(c *gin.Context) {
	invoices, err := s.salesSvc.ListHeld(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, err := tenantctx.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, salesdomain.ErrInvoiceNotFound)
		return
	}

	invoice, err := s.salesSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) CancelInvoice(c *gin.Context) {
	id, err := tenantctx.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, salesdomain.ErrInvoiceNotFound)
		return
	}

	invoice, err := s.salesSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) ResumeInvoice(c *gin.Context) {
	id, err := tenantctx.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, salesdomain.ErrInvoiceNotFound)
		return
	}

	resumed, err := s.salesSvc.Resume(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resumed})
}

func (s *Server) PreviewCartTotals(c *gin.Context) {
	var req salesdomain.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	totals, err := s.salesSvc.PreviewTotals(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}
