// Package storetest opens migrated in-memory catalog stores for tests.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/store"

	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// New returns a store on a private in-memory sqlite database with the schema
// migrated and default channel, tax category and stock location in place.
func New(t testing.TB) *store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1)),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	require.NoError(t, st.EnsureDefaults(context.Background(), store.Defaults{Language: "en", Currency: "USD"}))
	return st
}
