package store

import (
	"context"
	"errors"
	"slices"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

func withProductRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Brand").
		Preload("Channels").
		Preload("FacetValues.Translations").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Variants.Translations").
		Preload("Variants.Prices").
		Preload("Variants.Collections.Translations")
}

// lookupChunkSize bounds the number of bind parameters in one IN clause.
var lookupChunkSize = 500

// FindProductsByExternalIDs returns non-deleted products matching ids, querying in chunks.
func (s *Store) FindProductsByExternalIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	for chunk := range slices.Chunk(ids, lookupChunkSize) {
		var batch []models.Product
		err := withProductRelations(s.conn(ctx)).
			Where("webhook_id IN ?", chunk).
			Order("id ASC").
			Find(&batch).Error
		if err != nil {
			return nil, err
		}
		products = append(products, batch...)
	}
	return products, nil
}

// LoadProduct returns the product with all relations the engine inspects.
func (s *Store) LoadProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := withProductRelations(s.conn(ctx)).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts p together with its translations and channels.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product, beforeSave func(*models.Product) error) error {
	if beforeSave != nil {
		if err := beforeSave(p); err != nil {
			return err
		}
	}
	return s.conn(ctx).Create(p).Error
}

// SaveProduct updates the scalar fields and brand reference, writing NULLs when cleared.
func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	return s.conn(ctx).
		Model(p).
		Select("unit", "measurement", "brand_id", "brand_name").
		Updates(p).Error
}

// SaveProductTranslation inserts or updates t.
func (s *Store) SaveProductTranslation(ctx context.Context, t *models.ProductTranslation) error {
	return s.conn(ctx).Save(t).Error
}
