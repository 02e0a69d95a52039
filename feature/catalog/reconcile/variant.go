package reconcile

import (
	"context"

	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/money"
)

// resolveVariant aligns the product's variant for item.SKU and returns its id.
//
// A matching variant gets its price in the channel updated, or created when missing,
// and its name aligned. Otherwise a variant is created with one price in the channel
// and the initial stock seed.
func (p *pipeline) resolveVariant(ctx context.Context, product *models.Product, item feed.RemoteItem) (uint, error) {
	amount := money.ToMinorUnits(p.opts.Rounding, item.Price.Value)

	if variant := product.VariantBySKU(item.SKU); variant != nil {
		if price := variant.PriceIn(p.channel.ID); price != nil {
			if price.Price != amount {
				price.Price = amount
				if err := p.tx.SavePrice(ctx, price); err != nil {
					return 0, persistErr("update variant price", err)
				}
			}
		} else {
			price := &models.VariantPrice{
				VariantID:    variant.ID,
				ChannelID:    p.channel.ID,
				CurrencyCode: p.channel.DefaultCurrency,
				Price:        amount,
			}
			if err := p.tx.SavePrice(ctx, price); err != nil {
				return 0, persistErr("create variant price", err)
			}
		}

		if err := p.alignVariantName(ctx, variant, item.Name); err != nil {
			return 0, err
		}
		return variant.ID, nil
	}

	taxCategory, err := p.taxCategory(ctx, item)
	if err != nil {
		return 0, err
	}

	variant := &models.Variant{
		ProductID:     product.ID,
		SKU:           item.SKU,
		TaxCategoryID: taxCategory.ID,
		Translations: []models.VariantTranslation{{
			LanguageCode: p.language,
			Name:         item.Name,
		}},
		Prices: []models.VariantPrice{{
			ChannelID:    p.channel.ID,
			CurrencyCode: p.channel.DefaultCurrency,
			Price:        amount,
		}},
		Channels: []models.Channel{*p.channel},
	}
	if err := p.tx.CreateVariant(ctx, variant); err != nil {
		return 0, &EntityCreationError{Entity: "variant", Key: item.SKU, Err: err}
	}
	if variant.ID == 0 {
		return 0, &EntityCreationError{Entity: "variant", Key: item.SKU}
	}

	location, err := p.tx.DefaultStockLocation(ctx)
	if err != nil {
		return 0, persistErr("resolve stock location", err)
	}
	if err := p.tx.SetStockOnHand(ctx, variant.ID, location.ID, p.opts.NewVariantStock); err != nil {
		return 0, persistErr("seed variant stock", err)
	}

	return variant.ID, nil
}

func (p *pipeline) alignVariantName(ctx context.Context, variant *models.Variant, name string) error {
	t := variant.Translation(p.language)
	if t == nil {
		t = &models.VariantTranslation{VariantID: variant.ID, LanguageCode: p.language}
	} else if t.Name == name {
		return nil
	}
	t.Name = name
	if err := p.tx.SaveVariantTranslation(ctx, t); err != nil {
		return persistErr("save variant translation", err)
	}
	return nil
}

// taxCategory returns the default tax category, or the first one.
func (p *pipeline) taxCategory(ctx context.Context, item feed.RemoteItem) (*models.TaxCategory, error) {
	cats, err := p.tx.TaxCategories(ctx)
	if err != nil {
		return nil, persistErr("list tax categories", err)
	}
	if len(cats) == 0 {
		return nil, &EntityCreationError{Entity: "variant", Key: item.SKU, Err: errNoTaxCategory}
	}
	for i := range cats {
		if cats[i].IsDefault {
			return &cats[i], nil
		}
	}
	return &cats[0], nil
}
