package models

// All returns every entity managed by the catalog store, in migration order.
func All() []any {
	return []any{
		&Channel{},
		&TaxCategory{},
		&StockLocation{},
		&Brand{},
		&Facet{},
		&FacetTranslation{},
		&FacetValue{},
		&FacetValueTranslation{},
		&Collection{},
		&CollectionTranslation{},
		&Product{},
		&ProductTranslation{},
		&Variant{},
		&VariantTranslation{},
		&VariantPrice{},
		&StockLevel{},
	}
}
