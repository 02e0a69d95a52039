package reconcile

import (
	"context"

	core "catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// resolveTaxonomy makes sure the product carries a facet value named child under parent.
//
// Lookups fall back in order: the product already has the value; a value with that
// name exists anywhere; a facet named parent exists and gets a new value; a new facet
// and value are created.
func (p *pipeline) resolveTaxonomy(ctx context.Context, product *models.Product, parent, child string) error {
	if child == "" {
		return nil
	}
	if product.HasFacetValue(child, p.language) {
		return nil
	}

	valueID, err := p.scope.Resolve(core.Key{Kind: kindFacetValue, Name: child, Language: p.language}, func() (uint, error) {
		existing, err := p.tx.FindFacetValueByName(ctx, child, p.language)
		if err != nil {
			return 0, persistErr("find facet value", err)
		}
		if existing != nil {
			return existing.ID, nil
		}

		if parent == "" {
			return 0, &EntityCreationError{Entity: "facet value", Key: child, Err: errNoParentFacet}
		}
		facetID, err := p.resolveFacet(ctx, parent)
		if err != nil {
			return 0, err
		}

		value := &models.FacetValue{
			FacetID: facetID,
			Code:    utils.SuffixedSlug(child),
			Translations: []models.FacetValueTranslation{{
				LanguageCode: p.language,
				Name:         child,
			}},
		}
		if err := p.tx.CreateFacetValue(ctx, value); err != nil {
			return 0, &EntityCreationError{Entity: "facet value", Key: child, Err: err}
		}
		return value.ID, nil
	})
	if err != nil {
		return err
	}

	if err := p.tx.AttachFacetValue(ctx, product.ID, valueID); err != nil {
		return persistErr("attach facet value", err)
	}
	return nil
}

func (p *pipeline) resolveFacet(ctx context.Context, name string) (uint, error) {
	return p.scope.Resolve(core.Key{Kind: kindFacet, Name: name, Language: p.language}, func() (uint, error) {
		existing, err := p.tx.FindFacetByName(ctx, name, p.language)
		if err != nil {
			return 0, persistErr("find facet", err)
		}
		if existing != nil {
			return existing.ID, nil
		}

		facet := &models.Facet{
			Code:      utils.SuffixedSlug(name),
			IsPrivate: false,
			Translations: []models.FacetTranslation{{
				LanguageCode: p.language,
				Name:         name,
			}},
		}
		if err := p.tx.CreateFacet(ctx, facet); err != nil {
			return 0, &EntityCreationError{Entity: "facet", Key: name, Err: err}
		}
		return facet.ID, nil
	})
}
