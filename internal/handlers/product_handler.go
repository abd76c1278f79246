package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"go-storefront/internal/catalog"
	"go-storefront/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductStore is the catalog part of the row store.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id string, fields map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	store     ProductStore
	baseURL   string
	uploadDir string
	logger    *zap.Logger
}

func NewProductHandler(store ProductStore, baseURL, uploadDir string, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		store:     store,
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
		logger:    logger.Named("products"),
	}
}

// --- GET: /api/products?category= ---
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, catalog.Filter(products, c.Query("category")))
}

// --- POST: Add a new product ---
func (h *ProductHandler) Add(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	if strings.TrimSpace(product.Name) == "" {
		badRequest(c, "Product name is required")
		return
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Kind == "" {
		product.Kind = models.KindApparel
	}
	if product.Kind != models.KindApparel && product.Kind != models.KindJewelry {
		badRequest(c, "Product kind must be apparel or jewelry")
		return
	}

	if err := h.store.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// --- PUT: partial update of a product ---
func (h *ProductHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	// the primary key is never rewritten through an update
	delete(fields, "id")

	product, err := h.store.UpdateProduct(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.store.DeleteProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// --- UPLOAD: product images ---
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		badRequest(c, "Only image files can be uploaded")
		return
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		h.logger.Error("save upload", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     h.baseURL + "/uploads/" + filename,
	})
}
