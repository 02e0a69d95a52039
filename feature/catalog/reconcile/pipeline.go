package reconcile

import (
	"context"
	"fmt"
	"strings"

	core "catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
)

// Registry kinds.
const (
	kindBrand      = "brand"
	kindFacet      = "facet"
	kindFacetValue = "facet_value"
	kindCollection = "collection"
)

type pipelineResult struct {
	productID uint
	variantID uint
}

// pipeline processes one item inside its transaction.
type pipeline struct {
	tx       Catalog
	scope    *core.Scope
	channel  *models.Channel
	language string
	opts     Options
}

// update aligns an existing product with item.
func (p *pipeline) update(ctx context.Context, productID uint, item feed.RemoteItem) (pipelineResult, error) {
	product, err := p.tx.LoadProduct(ctx, productID)
	if err != nil {
		return pipelineResult{}, persistErr("load product", err)
	}
	if product == nil {
		return pipelineResult{}, &PersistenceError{Op: "load product", Err: fmt.Errorf("product %d not found", productID)}
	}

	product.Unit = item.Unit
	product.Measurement = item.Measurement
	if err := p.applyBrand(ctx, product, item.Brand); err != nil {
		return pipelineResult{}, err
	}
	if err := p.tx.SaveProduct(ctx, product); err != nil {
		return pipelineResult{}, persistErr("save product", err)
	}

	if err := p.upsertTranslation(ctx, product, item.Name); err != nil {
		return pipelineResult{}, err
	}

	return p.alignChildren(ctx, product, item)
}

// create provisions a product, its default variant and its relations for item.
func (p *pipeline) create(ctx context.Context, item feed.RemoteItem) (pipelineResult, error) {
	product := &models.Product{
		ExternalID:  item.ID,
		Unit:        item.Unit,
		Measurement: item.Measurement,
		Translations: []models.ProductTranslation{{
			LanguageCode: p.language,
			Name:         item.Name,
			Slug:         utils.SuffixedSlug(item.Name),
		}},
	}
	if err := p.applyBrand(ctx, product, item.Brand); err != nil {
		return pipelineResult{}, err
	}

	err := p.tx.CreateProduct(ctx, product, func(product *models.Product) error {
		product.Channels = append(product.Channels, *p.channel)
		return nil
	})
	if err != nil {
		return pipelineResult{}, &EntityCreationError{Entity: "product", Key: item.ID, Err: err}
	}
	if product.ID == 0 {
		return pipelineResult{}, &EntityCreationError{Entity: "product", Key: item.ID}
	}

	return p.alignChildren(ctx, product, item)
}

// alignChildren runs the variant, collection and taxonomy steps in that order.
func (p *pipeline) alignChildren(ctx context.Context, product *models.Product, item feed.RemoteItem) (pipelineResult, error) {
	variantID, err := p.resolveVariant(ctx, product, item)
	if err != nil {
		return pipelineResult{}, err
	}

	product, err = p.tx.LoadProduct(ctx, product.ID)
	if err != nil {
		return pipelineResult{}, persistErr("reload product", err)
	}
	if product == nil {
		return pipelineResult{}, &EntityCreationError{Entity: "product", Key: item.ID, Err: fmt.Errorf("product vanished after save")}
	}

	var variant *models.Variant
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		return pipelineResult{}, &EntityCreationError{Entity: "variant", Key: item.SKU, Err: fmt.Errorf("variant %d not attached to product %d", variantID, product.ID)}
	}

	if err := p.resolveCollection(ctx, variant, strings.TrimSpace(item.Collection)); err != nil {
		return pipelineResult{}, err
	}
	if err := p.resolveTaxonomy(ctx, product, strings.TrimSpace(item.ParentFacet), strings.TrimSpace(item.ChildFacet)); err != nil {
		return pipelineResult{}, err
	}

	return pipelineResult{productID: product.ID, variantID: variantID}, nil
}

// applyBrand sets or clears the brand reference and the denormalized brand name.
func (p *pipeline) applyBrand(ctx context.Context, product *models.Product, brand string) error {
	name := strings.TrimSpace(brand)
	if name == "" {
		product.BrandID = nil
		product.BrandName = nil
		product.Brand = nil
		return nil
	}

	brands := p.tx.Brands()
	id, err := p.scope.Resolve(core.Key{Kind: kindBrand, Name: name}, func() (uint, error) {
		existing, err := brands.FindByName(ctx, name)
		if err != nil {
			return 0, persistErr("find brand", err)
		}
		if existing != nil {
			return existing.ID, nil
		}
		created, err := brands.Create(ctx, name, p.opts.BrandPriority)
		if err != nil {
			return 0, &EntityCreationError{Entity: "brand", Key: name, Err: err}
		}
		return created.ID, nil
	})
	if err != nil {
		return err
	}

	// The stored name is the brand's own, which may differ in case from the feed's
	resolved, err := brands.Get(ctx, id)
	if err != nil {
		return persistErr("load brand", err)
	}
	if resolved == nil {
		return &PersistenceError{Op: "load brand", Err: fmt.Errorf("brand %d not found", id)}
	}

	product.BrandID = &resolved.ID
	product.BrandName = &resolved.Name
	product.Brand = nil
	return nil
}

// upsertTranslation sets the product name in the target language.
// The slug is only regenerated when the name changes.
func (p *pipeline) upsertTranslation(ctx context.Context, product *models.Product, name string) error {
	t := product.Translation(p.language)
	if t == nil {
		t = &models.ProductTranslation{ProductID: product.ID, LanguageCode: p.language}
	}

	if t.ID != 0 && t.Name == name && t.Slug != "" {
		return nil
	}

	t.Name = name
	t.Slug = utils.SuffixedSlug(name)
	if err := p.tx.SaveProductTranslation(ctx, t); err != nil {
		return persistErr("save product translation", err)
	}
	return nil
}
