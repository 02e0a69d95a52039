// Package utils provides common utility functions for the catalog-sync application.
// It includes helpers for type conversion, slug normalization and random code suffixes
// that don't fit into domain-specific packages.
package utils
