package store

import "testing"

// SetLookupChunkSize overrides the IN clause chunk size for the duration of t.
func SetLookupChunkSize(t testing.TB, n int) {
	prev := lookupChunkSize
	lookupChunkSize = n
	t.Cleanup(func() { lookupChunkSize = prev })
}
