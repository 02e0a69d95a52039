package reconcile_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	core "catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/money"
	"catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/store/storetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type staticFeed struct {
	items []feed.RemoteItem
	err   error
	calls int
}

func (f *staticFeed) Fetch(context.Context, string) ([]feed.RemoteItem, error) {
	f.calls++
	return f.items, f.err
}

type recorder struct {
	reindex    int
	changed    [][]uint
	reindexErr error
}

func (r *recorder) Reindex(context.Context) error {
	r.reindex++
	return r.reindexErr
}

func (r *recorder) VariantsChanged(_ context.Context, ids []uint) error {
	r.changed = append(r.changed, ids)
	return nil
}

func widget() feed.RemoteItem {
	return feed.RemoteItem{
		ID:          "X1",
		Name:        "Widget",
		Price:       feed.NewPrice("9.99"),
		SKU:         "W1",
		Collection:  "Gadgets",
		ParentFacet: "Type",
		ChildFacet:  "Electronics",
		Unit:        "pcs",
		Measurement: "1",
	}
}

func newEngine(src reconcile.Feed, catalog reconcile.Catalog, n reconcile.Notifier, mutate ...func(*reconcile.Options)) *reconcile.Engine {
	opts := reconcile.DefaultOptions("http://feed.test/products")
	for _, m := range mutate {
		m(&opts)
	}
	return reconcile.NewEngine(src, catalog, n, zap.NewNop(), opts)
}

// hasSlugBase reports whether slug is name's normalized form plus a random suffix.
func hasSlugBase(slug, name string) bool {
	base := utils.NormalizeString(name, "-")
	return strings.HasPrefix(slug, base+"-") && len(slug) == len(base)+1+utils.SuffixLength
}

func count(t *testing.T, st *store.Store, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, st.DB().Model(model).Count(&n).Error)
	return n
}

func productByExternalID(t *testing.T, st *store.Store, id string) *models.Product {
	t.Helper()
	found, err := st.FindProductsByExternalIDs(context.Background(), []string{id})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return &found[0]
}

func TestRun_CreatesWidgetEndToEnd(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	n := &recorder{}

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, n).Run(ctx)
	require.NoError(t, err)
	assert.True(t, summary.IsSuccess())
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Updated)

	p := productByExternalID(t, st, "X1")
	assert.Equal(t, "pcs", p.Unit)
	assert.Equal(t, "1", p.Measurement)
	tr := p.Translation("en")
	require.NotNil(t, tr)
	assert.Equal(t, "Widget", tr.Name)
	assert.True(t, hasSlugBase(tr.Slug, "Widget"), tr.Slug)
	require.Len(t, p.Channels, 1)

	require.Len(t, p.Variants, 1)
	v := p.Variants[0]
	assert.Equal(t, "W1", v.SKU)
	assert.NotZero(t, v.TaxCategoryID)
	require.Len(t, v.Prices, 1)
	assert.Equal(t, int64(999), v.Prices[0].Price)
	assert.Equal(t, "USD", v.Prices[0].CurrencyCode)
	assert.Equal(t, "Widget", v.Translation("en").Name)

	var level models.StockLevel
	require.NoError(t, st.DB().Where("variant_id = ?", v.ID).First(&level).Error)
	assert.Equal(t, reconcile.NewVariantStockValue, level.StockOnHand)

	require.Len(t, v.Collections, 1)
	col := v.Collections[0]
	assert.Equal(t, "Gadgets", col.Translation("en").Name)
	assert.True(t, hasSlugBase(col.Translation("en").Slug, "Gadgets"))
	ids, _, err := models.ParseVariantIDs(col.Filters)
	require.NoError(t, err)
	assert.Equal(t, []string{strconv.Itoa(int(v.ID))}, ids)

	require.Len(t, p.FacetValues, 1)
	assert.Equal(t, "Electronics", p.FacetValues[0].Translation("en").Name)
	assert.True(t, strings.HasPrefix(p.FacetValues[0].Code, "electronics-"))
	facet, err := st.FindFacetByName(ctx, "Type", "en")
	require.NoError(t, err)
	require.NotNil(t, facet)
	assert.Equal(t, facet.ID, p.FacetValues[0].FacetID)
	assert.False(t, facet.IsPrivate)

	assert.Equal(t, 1, n.reindex)
	require.Len(t, n.changed, 1)
	assert.Equal(t, []uint{v.ID}, n.changed[0])
	assert.Equal(t, []uint{v.ID}, summary.ChangedVariantIDs)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	src := &staticFeed{items: []feed.RemoteItem{widget()}}
	engine := newEngine(src, st, &recorder{})

	_, err := engine.Run(ctx)
	require.NoError(t, err)
	slug := productByExternalID(t, st, "X1").Translation("en").Slug

	summary, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 1, summary.Updated)

	assert.Equal(t, int64(1), count(t, st, &models.Product{}))
	assert.Equal(t, int64(1), count(t, st, &models.Variant{}))
	assert.Equal(t, int64(1), count(t, st, &models.VariantPrice{}))
	assert.Equal(t, int64(1), count(t, st, &models.Facet{}))
	assert.Equal(t, int64(1), count(t, st, &models.FacetValue{}))
	assert.Equal(t, int64(1), count(t, st, &models.Collection{}))
	assert.Equal(t, int64(1), count(t, st, &models.StockLevel{}))

	p := productByExternalID(t, st, "X1")
	assert.Equal(t, slug, p.Translation("en").Slug)
	assert.Len(t, p.FacetValues, 1)
	require.Len(t, p.Variants[0].Collections, 1)
	ids, _, err := models.ParseVariantIDs(p.Variants[0].Collections[0].Filters)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestRun_PriceConversion(t *testing.T) {
	st := storetest.New(t)
	item := widget()
	item.Price = feed.NewPrice("12.50")

	_, err := newEngine(&staticFeed{items: []feed.RemoteItem{item}}, st, nil).Run(context.Background())
	require.NoError(t, err)

	p := productByExternalID(t, st, "X1")
	assert.Equal(t, int64(1250), p.Variants[0].Prices[0].Price)
}

func TestRun_BankersRounding(t *testing.T) {
	st := storetest.New(t)
	item := widget()
	item.Price = feed.NewPrice("0.125")

	_, err := newEngine(&staticFeed{items: []feed.RemoteItem{item}}, st, nil, func(o *reconcile.Options) {
		o.Rounding = money.Bankers{}
	}).Run(context.Background())
	require.NoError(t, err)

	p := productByExternalID(t, st, "X1")
	assert.Equal(t, int64(12), p.Variants[0].Prices[0].Price)
}

func TestRun_UpdatesChangedFields(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	src := &staticFeed{items: []feed.RemoteItem{widget()}}
	engine := newEngine(src, st, nil)

	_, err := engine.Run(ctx)
	require.NoError(t, err)
	before := productByExternalID(t, st, "X1")

	changed := widget()
	changed.Name = "Super Widget"
	changed.Price = feed.NewPrice("10.00")
	changed.Unit = "box"
	src.items = []feed.RemoteItem{changed}

	summary, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	after := productByExternalID(t, st, "X1")
	assert.Equal(t, "box", after.Unit)
	tr := after.Translation("en")
	assert.Equal(t, "Super Widget", tr.Name)
	assert.NotEqual(t, before.Translation("en").Slug, tr.Slug)
	assert.True(t, hasSlugBase(tr.Slug, "Super Widget"))
	assert.Equal(t, before.Translation("en").ID, tr.ID)

	require.Len(t, after.Variants, 1)
	assert.Equal(t, int64(1000), after.Variants[0].Prices[0].Price)
	assert.Equal(t, "Super Widget", after.Variants[0].Translation("en").Name)
}

func TestRun_CreatesMissingPrice(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	p := &models.Product{ExternalID: "X1"}
	require.NoError(t, st.CreateProduct(ctx, p, nil))
	require.NoError(t, st.CreateVariant(ctx, &models.Variant{ProductID: p.ID, SKU: "W1"}))

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	got := productByExternalID(t, st, "X1")
	require.Len(t, got.Variants, 1)
	require.Len(t, got.Variants[0].Prices, 1)
	assert.Equal(t, int64(999), got.Variants[0].Prices[0].Price)
	assert.Equal(t, "USD", got.Variants[0].Prices[0].CurrencyCode)
	assert.Equal(t, "Widget", got.Variants[0].Translation("en").Name)
	// no stock seed for variants that already existed
	assert.Equal(t, int64(0), count(t, st, &models.StockLevel{}))
}

func TestRun_NewSKUAddsVariant(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	src := &staticFeed{items: []feed.RemoteItem{widget()}}
	engine := newEngine(src, st, nil)

	_, err := engine.Run(ctx)
	require.NoError(t, err)

	item := widget()
	item.SKU = "W2"
	src.items = []feed.RemoteItem{item}
	_, err = engine.Run(ctx)
	require.NoError(t, err)

	p := productByExternalID(t, st, "X1")
	assert.Len(t, p.Variants, 2)
	assert.Equal(t, int64(2), count(t, st, &models.StockLevel{}))

	// both variants end up in the single collection
	assert.Equal(t, int64(1), count(t, st, &models.Collection{}))
	col, err := st.FindCollectionByName(ctx, "Gadgets", "en")
	require.NoError(t, err)
	ids, _, err := models.ParseVariantIDs(col.Filters)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestRun_MergesIntoExistingCollection(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	filter, err := models.NewVariantIDFilter([]string{"5"})
	require.NoError(t, err)
	existing := &models.Collection{
		Filters:      []models.ConfigurableOperation{filter},
		Translations: []models.CollectionTranslation{{LanguageCode: "en", Name: "Gadgets", Slug: "gadgets"}},
	}
	require.NoError(t, st.CreateCollection(ctx, existing))

	_, err = newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, st, &models.Collection{}))
	loaded, err := st.LoadCollection(ctx, existing.ID)
	require.NoError(t, err)
	ids, _, err := models.ParseVariantIDs(loaded.Filters)
	require.NoError(t, err)

	p := productByExternalID(t, st, "X1")
	assert.Equal(t, []string{"5", strconv.Itoa(int(p.Variants[0].ID))}, ids)
	require.Len(t, p.Variants[0].Collections, 1)
	assert.Equal(t, existing.ID, p.Variants[0].Collections[0].ID)
}

func TestRun_ReusesExistingFacetValue(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	facet := &models.Facet{Code: "category", Translations: []models.FacetTranslation{{LanguageCode: "en", Name: "Category"}}}
	require.NoError(t, st.CreateFacet(ctx, facet))
	value := &models.FacetValue{FacetID: facet.ID, Code: "electronics", Translations: []models.FacetValueTranslation{{LanguageCode: "en", Name: "Electronics"}}}
	require.NoError(t, st.CreateFacetValue(ctx, value))

	_, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, st, &models.Facet{}))
	assert.Equal(t, int64(1), count(t, st, &models.FacetValue{}))
	p := productByExternalID(t, st, "X1")
	require.Len(t, p.FacetValues, 1)
	assert.Equal(t, value.ID, p.FacetValues[0].ID)
}

func TestRun_AddsValueUnderExistingFacet(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	facet := &models.Facet{Code: "type", Translations: []models.FacetTranslation{{LanguageCode: "en", Name: "Type"}}}
	require.NoError(t, st.CreateFacet(ctx, facet))

	_, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, st, &models.Facet{}))
	assert.Equal(t, int64(1), count(t, st, &models.FacetValue{}))
	p := productByExternalID(t, st, "X1")
	require.Len(t, p.FacetValues, 1)
	assert.Equal(t, facet.ID, p.FacetValues[0].FacetID)
}

func TestRun_SharedTaxonomyCreatedOnce(t *testing.T) {
	st := storetest.New(t)
	a := widget()
	b := widget()
	b.ID, b.SKU, b.Name = "X2", "W2", "Gizmo"

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{a, b}}, st, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)

	assert.Equal(t, int64(1), count(t, st, &models.Facet{}))
	assert.Equal(t, int64(1), count(t, st, &models.FacetValue{}))
	assert.Equal(t, int64(1), count(t, st, &models.Collection{}))
	assert.Len(t, productByExternalID(t, st, "X2").FacetValues, 1)
}

func TestRun_Brands(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)
	a := widget()
	a.Brand = "Acme"
	b := widget()
	b.ID, b.SKU, b.Brand = "X2", "W2", "Acme"
	src := &staticFeed{items: []feed.RemoteItem{a, b}}
	engine := newEngine(src, st, nil)

	_, err := engine.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, st, &models.Brand{}))
	p := productByExternalID(t, st, "X1")
	require.NotNil(t, p.BrandID)
	require.NotNil(t, p.BrandName)
	assert.Equal(t, "Acme", *p.BrandName)
	require.NotNil(t, p.Brand)
	assert.Equal(t, models.PriorityLow, p.Brand.Priority)

	a.Brand = ""
	src.items = []feed.RemoteItem{a}
	_, err = engine.Run(ctx)
	require.NoError(t, err)

	p = productByExternalID(t, st, "X1")
	assert.Nil(t, p.BrandID)
	assert.Nil(t, p.BrandName)
	assert.NotNil(t, productByExternalID(t, st, "X2").BrandID)
}

// foldingBrands matches brand names case-insensitively, as a case-insensitive collation does.
type foldingBrands struct {
	reconcile.Brands
	db *gorm.DB
}

func (b *foldingBrands) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	err := b.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Order("id ASC").Limit(1).Find(&brand).Error
	if err != nil || brand.ID == 0 {
		return nil, err
	}
	return &brand, nil
}

type foldingCatalog struct {
	reconcile.Catalog
	db *gorm.DB
}

func (f *foldingCatalog) Transaction(ctx context.Context, fn func(tx reconcile.Catalog) error) error {
	return f.Catalog.Transaction(ctx, func(tx reconcile.Catalog) error {
		return fn(&foldingCatalog{Catalog: tx, db: tx.(*store.Store).DB()})
	})
}

func (f *foldingCatalog) Brands() reconcile.Brands {
	return &foldingBrands{Brands: f.Catalog.Brands(), db: f.db}
}

func TestRun_BrandNameFromResolvedBrand(t *testing.T) {
	st := storetest.New(t)
	_, err := st.Brands().Create(context.Background(), "Acme", models.PriorityHigh)
	require.NoError(t, err)

	item := widget()
	item.Brand = "acme"
	catalog := &foldingCatalog{Catalog: st, db: st.DB()}

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{item}}, catalog, &recorder{}).Run(context.Background())
	require.NoError(t, err)
	require.True(t, summary.IsSuccess(), summary.Results)

	assert.Equal(t, int64(1), count(t, st, &models.Brand{}))
	p := productByExternalID(t, st, "X1")
	require.NotNil(t, p.BrandName)
	assert.Equal(t, "Acme", *p.BrandName)
	require.NotNil(t, p.Brand)
	assert.Equal(t, models.PriorityHigh, p.Brand.Priority)
}

func TestRun_DuplicateIDCreatedOnce(t *testing.T) {
	st := storetest.New(t)
	first := widget()
	second := widget()
	second.Price = feed.NewPrice("5.00")

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{first, second}}, st, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Plan.Duplicates)

	assert.Equal(t, int64(1), count(t, st, &models.Product{}))
	p := productByExternalID(t, st, "X1")
	require.Len(t, p.Variants, 1)
	assert.Equal(t, int64(500), p.Variants[0].Prices[0].Price)
	assert.Equal(t, []uint{p.Variants[0].ID}, summary.ChangedVariantIDs)
}

func TestRun_SkipsIncompleteItems(t *testing.T) {
	st := storetest.New(t)
	noSKU := widget()
	noSKU.ID, noSKU.SKU = "X2", ""
	noID := widget()
	noID.ID = ""
	badPrice := widget()
	badPrice.ID, badPrice.Price = "X3", feed.NewPrice("n/a")

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{noSKU, widget(), noID, badPrice}}, st, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 3, summary.Skipped)
	assert.True(t, summary.IsSuccess())
	assert.Equal(t, int64(1), count(t, st, &models.Product{}))

	reasons := map[string]string{}
	for _, r := range summary.Results {
		if r.Status == core.StatusSkipped {
			reasons[r.Key] = r.Reason
		}
	}
	assert.Equal(t, "missing sku", reasons["X2"])
	assert.Equal(t, "missing id", reasons[""])
	assert.Contains(t, reasons["X3"], "invalid price")
}

func TestRun_MissingTaxCategory(t *testing.T) {
	st := storetest.New(t)
	require.NoError(t, st.DB().Where("1 = 1").Delete(&models.TaxCategory{}).Error)

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Failed)
	assert.ErrorIs(t, summary.Results[0].Err, reconcile.ErrEntityCreation)

	// the product insert was rolled back with the item
	assert.Equal(t, int64(0), count(t, st, &models.Product{}))
}

// faultyCatalog fails the first AttachFacetValue call.
type faultyCatalog struct {
	reconcile.Catalog
	failures *int
}

func (f *faultyCatalog) Transaction(ctx context.Context, fn func(tx reconcile.Catalog) error) error {
	return f.Catalog.Transaction(ctx, func(tx reconcile.Catalog) error {
		return fn(&faultyCatalog{Catalog: tx, failures: f.failures})
	})
}

func (f *faultyCatalog) AttachFacetValue(ctx context.Context, productID, valueID uint) error {
	if *f.failures > 0 {
		*f.failures--
		return errors.New("disk full")
	}
	return f.Catalog.AttachFacetValue(ctx, productID, valueID)
}

func TestRun_ItemFailureIsIsolated(t *testing.T) {
	st := storetest.New(t)
	failures := 1
	catalog := &faultyCatalog{Catalog: st, failures: &failures}
	n := &recorder{}

	a := widget()
	b := widget()
	b.ID, b.SKU, b.Name = "X2", "W2", "Gizmo"

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{a, b}}, catalog, n).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, summary.IsSuccess())
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Created)

	failed := summary.Results[0]
	assert.Equal(t, "X1", failed.Key)
	assert.ErrorIs(t, failed.Err, reconcile.ErrPersistence)
	assert.Contains(t, failed.Error, "disk full")

	// X1 left nothing behind; X2 recreated the shared entities X1 had rolled back
	assert.Equal(t, int64(1), count(t, st, &models.Product{}))
	assert.Equal(t, int64(1), count(t, st, &models.Collection{}))
	assert.Equal(t, int64(1), count(t, st, &models.Facet{}))
	assert.Equal(t, int64(1), count(t, st, &models.FacetValue{}))
	p := productByExternalID(t, st, "X2")
	assert.Len(t, p.FacetValues, 1)
	require.Len(t, p.Variants[0].Collections, 1)

	assert.Equal(t, 1, n.reindex)
	assert.Equal(t, [][]uint{{p.Variants[0].ID}}, n.changed)
}

func TestRun_StopOnError(t *testing.T) {
	st := storetest.New(t)
	failures := 1
	catalog := &faultyCatalog{Catalog: st, failures: &failures}
	n := &recorder{}

	a := widget()
	b := widget()
	b.ID, b.SKU = "X2", "W2"

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{a, b}}, catalog, n, func(o *reconcile.Options) {
		o.StopOnError = true
	}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrPersistence)
	require.NotNil(t, summary)
	assert.True(t, summary.Aborted)
	assert.Len(t, summary.Results, 1)
	assert.Equal(t, int64(0), count(t, st, &models.Product{}))
	assert.Equal(t, 0, n.reindex)
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	st := storetest.New(t)
	n := &recorder{}
	src := &staticFeed{err: &feed.FetchError{URL: "http://feed.test", StatusCode: 503}}

	summary, err := newEngine(src, st, n).Run(context.Background())
	assert.ErrorIs(t, err, feed.ErrFetch)
	require.NotNil(t, summary)
	assert.True(t, summary.Aborted)
	assert.Equal(t, int64(0), count(t, st, &models.Product{}))
	assert.Equal(t, 0, n.reindex)
}

func TestRun_FinalizeFailureReported(t *testing.T) {
	st := storetest.New(t)
	n := &recorder{reindexErr: errors.New("search down")}

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, n).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary.FinalizeError, "search down")
	assert.False(t, summary.IsSuccess())
	assert.Equal(t, 1, summary.Created)
}

func TestRun_CancelledContext(t *testing.T) {
	st := storetest.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, st, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, summary.Aborted)
}

func TestRun_LookupFailureIsPersistenceError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `channels`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "default_language_code", "default_currency_code", "is_default"}).
			AddRow(1, "default", "en", "USD", true))
	mock.ExpectQuery("SELECT (.+) FROM `products`").WillReturnError(errors.New("connection reset"))

	summary, err := newEngine(&staticFeed{items: []feed.RemoteItem{widget()}}, store.New(db), nil).Run(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrPersistence)
	assert.True(t, summary.Aborted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
