package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	productdomain "github.com/saurabhwebdev/openpos/internal/product/domain"
	salesdomain "github.com/saurabhwebdev/openpos/internal/sales/domain"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, salesdomain.ErrInvalidTenant),
		errors.Is(err, productdomain.ErrInvalidTenant),
		errors.Is(err, stockdomain.ErrInvalidTenant),
		errors.Is(err, taxdomain.ErrInvalidTenant),
		errors.Is(err, tenantdomain.ErrInvalidTenant):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, stockdomain.ErrInsufficientStock):
		return http.StatusConflict, errorPayload{
			Type:    "insufficient_stock",
			Message: "insufficient stock",
		}
	case errors.Is(err, salesdomain.ErrAlreadyCancelled),
		errors.Is(err, salesdomain.ErrNotHeld),
		errors.Is(err, productdomain.ErrDuplicateSKU):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, salesdomain.ErrInvoiceNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, stockdomain.ErrProductNotFound),
		errors.Is(err, taxdomain.ErrNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, salesdomain.ErrEmptyCart),
		errors.Is(err, salesdomain.ErrInvalidQuantity),
		errors.Is(err, salesdomain.ErrInvalidStatus),
		errors.Is(err, salesdomain.ErrInvalidDiscount),
		errors.Is(err, salesdomain.ErrInvalidPayment),
		errors.Is(err, salesdomain.ErrInvalidDate),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, stockdomain.ErrInvalidMovementType),
		errors.Is(err, stockdomain.ErrInvalidQuantity),
		errors.Is(err, taxdomain.ErrInvalidName),
		errors.Is(err, taxdomain.ErrInvalidRate),
		errors.Is(err, tenantdomain.ErrInvalidName):
		return true
	default:
		return false
	}
}
