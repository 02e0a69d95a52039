package reconcile

import (
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/money"
)

// NewVariantStockValue is the stock on hand seeded for every variant created by a run.
const NewVariantStockValue = 9999

// Options tune an Engine. They are fixed for the engine's lifetime.
type Options struct {
	// FeedURL is the address passed to the feed on every run.
	FeedURL string
	// StopOnError aborts the remaining items at the first failed item.
	StopOnError bool
	// NewVariantStock is the stock on hand seeded for created variants.
	NewVariantStock int
	// BrandPriority is the priority given to brands created by a run.
	BrandPriority int
	// Rounding converts prices to minor units.
	Rounding money.Strategy
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions(feedURL string) Options {
	return Options{
		FeedURL:         feedURL,
		NewVariantStock: NewVariantStockValue,
		BrandPriority:   models.PriorityLow,
		Rounding:        money.HalfUp{},
	}
}
