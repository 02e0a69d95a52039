package reconcile

import (
	"context"
	"fmt"
	"strconv"

	core "catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// resolveCollection makes sure the variant is a member of the collection named name.
//
// An existing collection gets the variant id merged into its variant-id filter; a
// missing one is created with a filter seeded with the variant id.
func (p *pipeline) resolveCollection(ctx context.Context, variant *models.Variant, name string) error {
	if name == "" {
		return nil
	}
	if variant.InCollection(name, p.language) {
		return nil
	}

	variantKey := strconv.FormatUint(uint64(variant.ID), 10)

	collectionID, err := p.scope.Resolve(core.Key{Kind: kindCollection, Name: name, Language: p.language}, func() (uint, error) {
		existing, err := p.tx.FindCollectionByName(ctx, name, p.language)
		if err != nil {
			return 0, persistErr("find collection", err)
		}
		if existing != nil {
			return existing.ID, nil
		}

		filter, err := models.NewVariantIDFilter([]string{variantKey})
		if err != nil {
			return 0, &EntityCreationError{Entity: "collection", Key: name, Err: err}
		}
		collection := &models.Collection{
			Filters: []models.ConfigurableOperation{filter},
			Translations: []models.CollectionTranslation{{
				LanguageCode: p.language,
				Name:         name,
				Slug:         utils.SuffixedSlug(name),
			}},
		}
		if err := p.tx.CreateCollection(ctx, collection); err != nil {
			return 0, &EntityCreationError{Entity: "collection", Key: name, Err: err}
		}
		return collection.ID, nil
	})
	if err != nil {
		return err
	}

	collection, err := p.tx.LoadCollection(ctx, collectionID)
	if err != nil {
		return persistErr("load collection", err)
	}
	if collection == nil {
		return &PersistenceError{Op: "load collection", Err: fmt.Errorf("collection %d not found", collectionID)}
	}

	filters, changed, err := models.WithVariantID(collection.Filters, variantKey)
	if err != nil {
		return &PersistenceError{Op: "merge collection filter", Err: err}
	}
	if changed {
		collection.Filters = filters
		if err := p.tx.SaveCollectionFilters(ctx, collection); err != nil {
			return persistErr("save collection filters", err)
		}
	}

	if err := p.tx.AttachCollection(ctx, variant.ID, collection.ID); err != nil {
		return persistErr("attach collection", err)
	}
	return nil
}
