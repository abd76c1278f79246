package handlers

import (
	"net/http"

	"go-storefront/internal/cart"
	"go-storefront/internal/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	carts          *cart.Registry
	submitter      *checkout.Submitter
	pickupLocation string
	logger         *zap.Logger
}

func NewCheckoutHandler(carts *cart.Registry, submitter *checkout.Submitter, pickupLocation string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:          carts,
		submitter:      submitter,
		pickupLocation: pickupLocation,
		logger:         logger.Named("checkout"),
	}
}

// --- GET: /api/checkout/options?fulfillment= ---
func (h *CheckoutHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"options":         checkout.PaymentOptions(c.Query("fulfillment")),
		"pickup_location": h.pickupLocation,
	})
}

// --- POST: /api/carts/:id/checkout ---
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ct, ok := h.carts.Get(c.Param("id"))
	if !ok {
		notFound(c, cart.ErrMsgCartNotFound)
		return
	}

	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	order, err := h.submitter.Submit(c.Request.Context(), ct, form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
		"cart":    viewOf(ct),
	})
}
