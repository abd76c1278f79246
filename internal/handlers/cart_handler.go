package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-storefront/internal/cart"
	"go-storefront/internal/catalog"
	"go-storefront/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductReader looks up a single catalog product.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type CartHandler struct {
	carts    *cart.Registry
	products ProductReader
	logger   *zap.Logger
}

func NewCartHandler(carts *cart.Registry, products ProductReader, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, products: products, logger: logger.Named("cart")}
}

type cartItemView struct {
	cart.Item
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartView struct {
	ID      string         `json:"id"`
	Items   []cartItemView `json:"items"`
	Summary cart.Summary   `json:"summary"`
}

func viewOf(ct *cart.Cart) cartView {
	items := ct.Items()
	out := make([]cartItemView, 0, len(items))
	for _, it := range items {
		out = append(out, cartItemView{Item: it, LineTotal: it.LineTotal()})
	}
	return cartView{ID: ct.ID(), Items: out, Summary: ct.Summarize()}
}

// lookup resolves :id or writes a 404.
func (h *CartHandler) lookup(c *gin.Context) (*cart.Cart, bool) {
	ct, ok := h.carts.Get(c.Param("id"))
	if !ok {
		notFound(c, cart.ErrMsgCartNotFound)
		return nil, false
	}
	return ct, true
}

// --- POST: /api/carts ---
func (h *CartHandler) Create(c *gin.Context) {
	ct := h.carts.Create()
	c.JSON(http.StatusCreated, viewOf(ct))
}

// --- GET: /api/carts/:id ---
func (h *CartHandler) Get(c *gin.Context) {
	ct, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(ct))
}

type addItemRequest struct {
	ProductID  string `json:"product_id"`
	ShirtColor string `json:"shirt_color"`
	ShirtSize  string `json:"shirt_size"`
	ItemType   string `json:"item_type"`
}

// --- POST: /api/carts/:id/items ---
func (h *CartHandler) AddItem(c *gin.Context) {
	ct, ok := h.lookup(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		badRequest(c, cart.ErrMsgProductIncomplete)
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	variant, err := catalog.ResolveVariant(*product, req.ShirtColor, req.ShirtSize, req.ItemType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := ct.AddVariant(product.ID, product.Name, catalog.UnitPrice(*product, variant), variant)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Debug("item added", zap.String("cart_id", ct.ID()), zap.String("key", item.Key), zap.Int("quantity", item.Quantity))

	c.JSON(http.StatusOK, viewOf(ct))
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// --- PATCH: /api/carts/:id/items/:key ---
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	ct, ok := h.lookup(c)
	if !ok {
		return
	}

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	if _, _, found := ct.ChangeQuantity(c.Param("key"), req.Delta); !found {
		notFound(c, cart.ErrMsgItemNotInCart)
		return
	}
	c.JSON(http.StatusOK, viewOf(ct))
}
