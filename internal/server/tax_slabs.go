package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
)

func (s *Server) ListTaxSlabs(c *gin.Context) {
	slabs, err := s.taxSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("country")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": slabs})
}

func (s *Server) SaveTaxSlab(c *gin.Context) {
	var req taxdomain.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	slab, err := s.taxSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": slab})
}

func (s *Server) DeleteTaxSlab(c *gin.Context) {
	if err := s.taxSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
