package store

import (
	"context"
	"errors"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// FindFacetByName returns the oldest facet translated as name in lang.
func (s *Store) FindFacetByName(ctx context.Context, name, lang string) (*models.Facet, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.FacetTranslation{}).
		Select("facet_id").
		Where("name = ? AND language_code = ?", name, lang)

	var f models.Facet
	err := db.Preload("Translations").Where("id IN (?)", ids).Order("id ASC").First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFacet inserts f together with its translations.
func (s *Store) CreateFacet(ctx context.Context, f *models.Facet) error {
	return s.conn(ctx).Create(f).Error
}

// FindFacetValueByName returns the oldest facet value translated as name in lang, under any facet.
func (s *Store) FindFacetValueByName(ctx context.Context, name, lang string) (*models.FacetValue, error) {
	db := s.conn(ctx)
	ids := db.Model(&models.FacetValueTranslation{}).
		Select("facet_value_id").
		Where("name = ? AND language_code = ?", name, lang)

	var v models.FacetValue
	err := db.Preload("Translations").Preload("Facet").Where("id IN (?)", ids).Order("id ASC").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateFacetValue inserts v together with its translations.
func (s *Store) CreateFacetValue(ctx context.Context, v *models.FacetValue) error {
	return s.conn(ctx).Omit("Facet").Create(v).Error
}

// AttachFacetValue links a facet value to a product. Existing links are kept.
func (s *Store) AttachFacetValue(ctx context.Context, productID, facetValueID uint) error {
	return s.conn(ctx).
		Model(&models.Product{ID: productID}).
		Omit("FacetValues.*").
		Association("FacetValues").
		Append(&models.FacetValue{ID: facetValueID})
}
