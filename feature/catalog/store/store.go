package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/reconcile"

	"gorm.io/gorm"
)

// ErrNoDefaultChannel is returned when the catalog has no channel at all.
var ErrNoDefaultChannel = errors.New("no default channel configured")

// Store is the gorm-backed catalog store.
type Store struct {
	db *gorm.DB
}

// New creates a store on db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Migrate creates or updates every catalog table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.conn(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// Transaction implements reconcile.Catalog.
func (s *Store) Transaction(ctx context.Context, fn func(tx reconcile.Catalog) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Brands implements reconcile.Catalog.
func (s *Store) Brands() reconcile.Brands {
	return NewBrandStore(s.db)
}

// DefaultChannel returns the channel flagged as default, or the first channel.
func (s *Store) DefaultChannel(ctx context.Context) (*models.Channel, error) {
	var channels []models.Channel
	if err := s.conn(ctx).Order("is_default DESC, id ASC").Limit(1).Find(&channels).Error; err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, ErrNoDefaultChannel
	}
	return &channels[0], nil
}

// DefaultStockLocation returns the first stock location, creating one if none exists.
func (s *Store) DefaultStockLocation(ctx context.Context) (*models.StockLocation, error) {
	var loc models.StockLocation
	err := s.conn(ctx).Order("id ASC").First(&loc).Error
	if err == nil {
		return &loc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	loc = models.StockLocation{Name: DefaultStockLocationName}
	if err := s.conn(ctx).Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// TaxCategories returns all tax categories ordered by id.
func (s *Store) TaxCategories(ctx context.Context) ([]models.TaxCategory, error) {
	var cats []models.TaxCategory
	if err := s.conn(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
