package database

import (
	"context"
	"time"

	"go-storefront/internal/models"

	"github.com/shopspring/decimal"
)

// SalesReport is the revenue and order count over a date range.
type SalesReport struct {
	Revenue decimal.Decimal
	Orders  int64
}

// SalesTotals sums order totals created within [start, end].
func (s *RowStore) SalesTotals(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	var (
		result  SalesReport
		revenue string
	)

	// COALESCE keeps an empty range at 0 instead of NULL
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if result.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.Orders).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
