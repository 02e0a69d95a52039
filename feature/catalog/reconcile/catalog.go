package reconcile

import (
	"context"

	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
)

// Catalog is the persistence surface the engine works against.
// Find* methods return (nil, nil) when nothing matches.
type Catalog interface {
	// Transaction runs fn against a catalog bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Catalog) error) error

	DefaultChannel(ctx context.Context) (*models.Channel, error)
	DefaultStockLocation(ctx context.Context) (*models.StockLocation, error)
	TaxCategories(ctx context.Context) ([]models.TaxCategory, error)

	// FindProductsByExternalIDs returns non-deleted products whose external id is in ids.
	FindProductsByExternalIDs(ctx context.Context, ids []string) ([]models.Product, error)
	// LoadProduct returns a product with its translations, variants and facet values.
	LoadProduct(ctx context.Context, id uint) (*models.Product, error)
	// CreateProduct inserts p. beforeSave runs right before the insert.
	CreateProduct(ctx context.Context, p *models.Product, beforeSave func(*models.Product) error) error
	// SaveProduct persists scalar fields and the brand reference of p.
	SaveProduct(ctx context.Context, p *models.Product) error
	SaveProductTranslation(ctx context.Context, t *models.ProductTranslation) error

	CreateVariant(ctx context.Context, v *models.Variant) error
	SaveVariantTranslation(ctx context.Context, t *models.VariantTranslation) error
	SavePrice(ctx context.Context, p *models.VariantPrice) error
	SetStockOnHand(ctx context.Context, variantID, locationID uint, quantity int) error

	FindFacetByName(ctx context.Context, name, lang string) (*models.Facet, error)
	CreateFacet(ctx context.Context, f *models.Facet) error
	FindFacetValueByName(ctx context.Context, name, lang string) (*models.FacetValue, error)
	CreateFacetValue(ctx context.Context, v *models.FacetValue) error
	AttachFacetValue(ctx context.Context, productID, facetValueID uint) error

	FindCollectionByName(ctx context.Context, name, lang string) (*models.Collection, error)
	LoadCollection(ctx context.Context, id uint) (*models.Collection, error)
	CreateCollection(ctx context.Context, c *models.Collection) error
	SaveCollectionFilters(ctx context.Context, c *models.Collection) error
	AttachCollection(ctx context.Context, variantID, collectionID uint) error

	// Brands returns the brand collaborator bound to the same transaction.
	Brands() Brands
}

// Brands resolves and creates brands.
type Brands interface {
	FindByName(ctx context.Context, name string) (*models.Brand, error)
	// Get returns the brand with id, or nil.
	Get(ctx context.Context, id uint) (*models.Brand, error)
	Create(ctx context.Context, name string, priority int) (*models.Brand, error)
}

// Notifier receives downstream notifications once a run has processed every item.
type Notifier interface {
	Reindex(ctx context.Context) error
	VariantsChanged(ctx context.Context, variantIDs []uint) error
}

// Feed is the source of remote items.
type Feed = feed.Fetcher
