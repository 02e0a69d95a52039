// Package models defines the gorm entities of the catalog store.
//
// Products are matched to feed items through the webhook_id column. Translated
// fields (names, slugs) live in per-language translation tables, and collection
// membership rules are stored as a JSON list of filters on the collection row.
package models
