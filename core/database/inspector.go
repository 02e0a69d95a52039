package database

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one table column in the shape of MySQL's SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string // "YES" or "NO"
	Key     string // "PRI" for primary key columns
	Default *string
	Extra   string
}

// Nullable reports whether the column accepts NULL.
func (c ColumnInfo) Nullable() bool {
	return c.Null != "NO"
}

// PrimaryKey reports whether the column is part of the primary key.
func (c ColumnInfo) PrimaryKey() bool {
	return c.Key == "PRI"
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteColumn is one row of PRAGMA table_info.
type sqliteColumn struct {
	Cid       int
	Name      string
	Type      string
	Notnull   int
	DfltValue *string
	Pk        int
}

// GetTableColumns lists the columns of table, names and types lowercased.
// An unknown table yields no columns on sqlite and an error on mysql.
func GetTableColumns(db *gorm.DB, table string) ([]ColumnInfo, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	var columns []ColumnInfo
	switch db.Dialector.Name() {
	case DriverSQLite:
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
		columns = make([]ColumnInfo, 0, len(rows))
		for _, row := range rows {
			col := ColumnInfo{Field: row.Name, Type: row.Type, Null: "YES", Default: row.DfltValue}
			if row.Notnull == 1 {
				col.Null = "NO"
			}
			if row.Pk > 0 {
				col.Key = "PRI"
			}
			columns = append(columns, col)
		}
	default:
		if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// ColumnMap indexes columns by field name.
func ColumnMap(columns []ColumnInfo) map[string]ColumnInfo {
	out := make(map[string]ColumnInfo, len(columns))
	for _, col := range columns {
		out[col.Field] = col
	}
	return out
}
