package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go-storefront/internal/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the order dashboard. Every request builds its own
// Aggregator over fresh rows; cost overrides are shared through the CostBook.
type AdminHandler struct {
	rows   admin.RowSource
	costs  *admin.CostBook
	logger *zap.Logger
}

func NewAdminHandler(rows admin.RowSource, costs *admin.CostBook, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{rows: rows, costs: costs, logger: logger.Named("admin")}
}

func (h *AdminHandler) load(c *gin.Context) (*admin.Aggregator, bool) {
	h.costs.Load(c.Request.Context())

	agg := admin.NewAggregator(h.costs)
	if err := agg.Load(c.Request.Context(), h.rows); err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}

	for _, d := range admin.Dimensions {
		// one value per repeated param, values may contain commas
		for _, v := range c.QueryArray(string(d)) {
			if v = strings.TrimSpace(v); v != "" {
				agg.SetFilter(d, v, true)
			}
		}
	}
	agg.SetSort(admin.ParseSortMode(c.Query("sort")))
	return agg, true
}

// --- GET: /api/admin/orders ---
func (h *AdminHandler) Orders(c *gin.Context) {
	agg, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sort":  admin.ParseSortMode(c.Query("sort")),
		"rows":  agg.View(),
		"stats": agg.Stats(),
	})
}

// --- GET: /api/admin/filters ---
func (h *AdminHandler) Filters(c *gin.Context) {
	agg, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"filters": agg.FilterOptions()})
}

// --- GET: /api/admin/costs ---
func (h *AdminHandler) Costs(c *gin.Context) {
	agg, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": agg.CostTable()})
}

type setCostRequest struct {
	ItemKey  string `json:"item_key" binding:"required"`
	UnitCost any    `json:"unit_cost"`
}

// --- PUT: /api/admin/costs ---
func (h *AdminHandler) SetCost(c *gin.Context) {
	var req setCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "item_key is required")
		return
	}

	raw := ""
	if req.UnitCost != nil {
		raw = fmt.Sprint(req.UnitCost)
	}

	cost, err := h.costs.Set(c.Request.Context(), req.ItemKey, raw)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item_key": req.ItemKey, "unit_cost": cost})
}
