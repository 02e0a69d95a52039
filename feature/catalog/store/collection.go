package store

import (
	"context"
	"errors"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// FindCollectionByName returns the oldest collection translated as name in lang.
func (s *Store) FindCollectionByName(ctx context.Context, name, lang string) (*models.Collection, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.CollectionTranslation{}).
		Select("collection_id").
		Where("name = ? AND language_code = ?", name, lang)

	var c models.Collection
	err := db.Preload("Translations").Where("id IN (?)", ids).Order("id ASC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCollection returns the collection with its translations.
func (s *Store) LoadCollection(ctx context.Context, id uint) (*models.Collection, error) {
	var c models.Collection
	err := s.conn(ctx).Preload("Translations").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCollection inserts c together with its translations.
func (s *Store) CreateCollection(ctx context.Context, c *models.Collection) error {
	return s.conn(ctx).Omit("Variants").Create(c).Error
}

// SaveCollectionFilters persists the filters of c.
func (s *Store) SaveCollectionFilters(ctx context.Context, c *models.Collection) error {
	return s.conn(ctx).Model(c).Select("filters").Updates(c).Error
}

// AttachCollection adds a variant to a collection. Existing memberships are kept.
func (s *Store) AttachCollection(ctx context.Context, variantID, collectionID uint) error {
	return s.conn(ctx).
		Model(&models.Variant{ID: variantID}).
		Omit("Collections.*").
		Association("Collections").
		Append(&models.Collection{ID: collectionID})
}
