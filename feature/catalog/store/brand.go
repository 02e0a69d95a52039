package store

import (
	"context"
	"errors"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// BrandStore is the gorm-backed brand collaborator.
type BrandStore struct {
	db *gorm.DB
}

// NewBrandStore creates a brand store on db.
func NewBrandStore(db *gorm.DB) *BrandStore {
	return &BrandStore{db: db}
}

// FindByName returns the oldest brand named name, or nil.
func (b *BrandStore) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	err := b.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// Get returns the brand with id, or nil.
func (b *BrandStore) Get(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	err := b.db.WithContext(ctx).First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// Create inserts a brand.
func (b *BrandStore) Create(ctx context.Context, name string, priority int) (*models.Brand, error) {
	brand := models.Brand{Name: name, Priority: priority}
	if err := b.db.WithContext(ctx).Create(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}
