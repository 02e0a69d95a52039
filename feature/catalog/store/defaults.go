package store

import (
	"context"
	"fmt"

	"catalog-sync/feature/catalog/models"
)

const (
	DefaultChannelCode       = "__default_channel__"
	DefaultStockLocationName = "Default Stock Location"
	DefaultTaxCategoryName   = "Standard Tax"
)

// Defaults describes the rows a fresh catalog needs before the first run.
type Defaults struct {
	Language string
	Currency string
}

// EnsureDefaults creates a default channel, tax category and stock location when missing.
func (s *Store) EnsureDefaults(ctx context.Context, d Defaults) error {
	if d.Language == "" {
		d.Language = "en"
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}

	db := s.conn(ctx)

	var count int64
	if err := db.Model(&models.Channel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count channels: %w", err)
	}
	if count == 0 {
		ch := models.Channel{
			Code:            DefaultChannelCode,
			DefaultLanguage: d.Language,
			DefaultCurrency: d.Currency,
			IsDefault:       true,
		}
		if err := db.Create(&ch).Error; err != nil {
			return fmt.Errorf("failed to create default channel: %w", err)
		}
	}

	if err := db.Model(&models.TaxCategory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tax categories: %w", err)
	}
	if count == 0 {
		tc := models.TaxCategory{Name: DefaultTaxCategoryName, IsDefault: true}
		if err := db.Create(&tc).Error; err != nil {
			return fmt.Errorf("failed to create default tax category: %w", err)
		}
	}

	if _, err := s.DefaultStockLocation(ctx); err != nil {
		return fmt.Errorf("failed to ensure stock location: %w", err)
	}

	return nil
}
