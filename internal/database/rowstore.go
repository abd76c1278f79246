package database

import (
	"context"

	"go-storefront/internal/models"

	"gorm.io/gorm"
)

// RowStore is the hosted row store: orders, order items, products and users.
// Errors come back exactly as the driver reports them.
type RowStore struct {
	db *gorm.DB
}

func NewRowStore(db *gorm.DB) *RowStore {
	return &RowStore{db: db}
}

// InsertOrder writes the order header. Items are inserted separately.
func (s *RowStore) InsertOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *RowStore) InsertOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&items).Error
}

// SelectOrders returns every order, newest first.
func (s *RowStore) SelectOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *RowStore) SelectOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Products ---

func (s *RowStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns gorm.ErrRecordNotFound when id is unknown.
func (s *RowStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *RowStore) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct applies a partial update and returns the stored product.
func (s *RowStore) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(product).Updates(fields).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *RowStore) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Users ---

// FindUserByEmail returns gorm.ErrRecordNotFound when no user matches.
func (s *RowStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RowStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}
