package database

import (
	"context"
	"errors"
	"fmt"

	"go-storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore keeps key/value pairs in the settings table. It is the
// fallback kvstore.Store when no Redis is configured.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).
		Clauses(clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Name: "key"}, Value: key}}}).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("settings: get %q: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set inserts or replaces the value stored under key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("settings: set %q: %w", key, err)
	}
	return nil
}
