// Package reconcile aligns the catalog store with the remote product feed.
//
// Engine.Run fetches the feed, matches every item to a product by external id and
// runs either the update or the create pipeline for it. Both pipelines then align the
// default variant and its price, the variant's collection membership and the product's
// facet value, provisioning missing variants, collections, facets and facet values.
// Nothing is ever deleted.
//
// Each item runs in its own transaction and yields a result; a failing item does not
// stop the run unless Options.StopOnError is set. After all items, the notifier is asked
// to reindex and is told which variants changed.
package reconcile
