package handlers

import (
	"errors"
	"net/http"

	"go-storefront/internal/cart"
	"go-storefront/internal/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// statusFor maps an error to the HTTP status the API returns for it.
func statusFor(err error) int {
	var cartErr *cart.ValidationError
	var formErr *checkout.ValidationError
	switch {
	case errors.As(err, &cartErr), errors.As(err, &formErr):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// respondError writes {"error": msg}. Store failures keep the store's message
// so operators see the real cause.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}
