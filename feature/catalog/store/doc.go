// Package store implements the catalog store on gorm.
//
// Store satisfies the catalog interface the reconciliation engine works against.
// Every method honours the context and, inside Transaction, the bound transaction.
//
//	st := store.New(db)
//	if err := st.Migrate(ctx); err != nil { ... }
//	if err := st.EnsureDefaults(ctx, store.Defaults{}); err != nil { ... }
package store
