// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that configures
// MySQL connections for production and SQLite for local runs and tests, based on
// the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the server
// with the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The migrate command
// uses it to report the catalog tables after auto-migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "products")
package database
