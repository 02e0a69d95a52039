package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"catalog-sync/core/config"
	"catalog-sync/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Database = database.Config{
		Driver: database.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "catalog.db"),
	}
	cfg.Catalog.Language = "en"
	cfg.Catalog.Currency = "USD"
	return cfg
}

func TestOpenStore_Migrates(t *testing.T) {
	cfg := sqliteConfig(t)

	db, st, err := openStore(context.Background(), cfg, zap.NewNop(), true)
	require.NoError(t, err)
	defer closeDB(db)

	channel, err := st.DefaultChannel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", channel.DefaultCurrency)
}

func TestOpenStore_ClosesConnectionOnFailure(t *testing.T) {
	cfg := sqliteConfig(t)

	// Without migration the defaults cannot be written
	db, st, err := openStore(context.Background(), cfg, zap.NewNop(), false)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Nil(t, st)
}

func TestCloseDB(t *testing.T) {
	cfg := sqliteConfig(t)
	db, err := database.Connect(cfg.Database)
	require.NoError(t, err)

	closeDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
