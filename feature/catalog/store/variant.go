package store

import (
	"context"
	"errors"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// CreateVariant inserts v together with its translations, prices and channels.
func (s *Store) CreateVariant(ctx context.Context, v *models.Variant) error {
	return s.conn(ctx).Create(v).Error
}

// SaveVariantTranslation inserts or updates t.
func (s *Store) SaveVariantTranslation(ctx context.Context, t *models.VariantTranslation) error {
	return s.conn(ctx).Save(t).Error
}

// SavePrice inserts or updates p.
func (s *Store) SavePrice(ctx context.Context, p *models.VariantPrice) error {
	return s.conn(ctx).Save(p).Error
}

// SetStockOnHand sets the on-hand quantity of a variant at a location.
func (s *Store) SetStockOnHand(ctx context.Context, variantID, locationID uint, quantity int) error {
	db := s.conn(ctx)

	var level models.StockLevel
	err := db.Where("variant_id = ? AND stock_location_id = ?", variantID, locationID).First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		level = models.StockLevel{
			VariantID:       variantID,
			StockLocationID: locationID,
			StockOnHand:     quantity,
		}
		return db.Create(&level).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&level).Update("stock_on_hand", quantity).Error
}
