package database

import (
	"regexp"
	"testing"

	"catalog-sync/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func migratedCatalog(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestGetTableColumns_CatalogTables(t *testing.T) {
	db := migratedCatalog(t)

	products, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	cols := ColumnMap(products)

	require.Contains(t, cols, "id")
	assert.True(t, cols["id"].PrimaryKey())
	assert.Equal(t, "varchar(255)", cols["webhook_id"].Type)
	assert.Equal(t, "varchar(64)", cols["unit"].Type)
	assert.True(t, cols["brand_id"].Nullable())
	assert.Contains(t, cols, "brand_name")
	assert.Contains(t, cols, "deleted_at")

	translations, err := GetTableColumns(db, "product_translations")
	require.NoError(t, err)
	cols = ColumnMap(translations)
	assert.Equal(t, "varchar(16)", cols["language_code"].Type)
	assert.Equal(t, "text", cols["description"].Type)
	assert.Contains(t, cols, "product_id")

	join, err := GetTableColumns(db, "collection_variants")
	require.NoError(t, err)
	cols = ColumnMap(join)
	assert.Len(t, cols, 2)
	assert.True(t, cols["collection_id"].PrimaryKey())
	assert.True(t, cols["variant_id"].PrimaryKey())
}

func TestGetTableColumns_UnknownTable(t *testing.T) {
	db := migratedCatalog(t)

	// PRAGMA table_info returns no rows for an unknown table
	cols, err := GetTableColumns(db, "catalog_archive")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_RejectsInvalidName(t *testing.T) {
	db := migratedCatalog(t)

	_, err := GetTableColumns(db, "products'); DROP TABLE products; --")
	assert.ErrorContains(t, err, "invalid table name")

	cols, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	assert.NotEmpty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("webhook_id", "VARCHAR(255)", "YES", "MUL", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `products`")).WillReturnRows(rows)

	cols, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Field)
	assert.Equal(t, "bigint unsigned", cols[0].Type)
	assert.True(t, cols[0].PrimaryKey())
	assert.False(t, cols[0].Nullable())
	assert.Equal(t, "varchar(255)", cols[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
