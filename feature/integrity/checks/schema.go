package checks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"catalog-sync/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the outcome for one table.
type TableReport struct {
	Missing        bool     `json:"missing"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

type expectedColumn struct {
	name string
	typ  string
}

// CheckSchema verifies the database schema using GORM models as the source of truth.
// Join tables of many2many relations are checked as well.
func CheckSchema(db *gorm.DB, entities []any) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	expected, err := expectedTables(db, entities)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport, len(expected)),
		Errors:  []string{},
	}

	tables := make([]string, 0, len(expected))
	for table := range expected {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		actualCols, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := compareTable(expected[table], actualCols)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

func compareTable(expected []expectedColumn, actualCols []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	// sqlite reports no columns at all for an unknown table
	if len(actualCols) == 0 {
		tbl.Missing = true
		tbl.Status = "error"
		return tbl
	}

	actualMap := database.ColumnMap(actualCols)

	for _, col := range expected {
		actCol, exists := actualMap[col.name]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, col.name)
			tbl.Status = "error"
			continue
		}

		// Only columns with an explicit type are compared, and only loosely
		if col.typ != "" && !strings.Contains(actCol.Type, col.typ) {
			tbl.TypeMismatches = append(tbl.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", col.name, col.typ, actCol.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

func expectedTables(db *gorm.DB, entities []any) (map[string][]expectedColumn, error) {
	cache := &sync.Map{}
	out := make(map[string][]expectedColumn)

	for _, entity := range entities {
		s, err := schema.Parse(entity, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", entity, err)
		}
		out[s.Table] = columnsOf(s)

		for _, rel := range s.Relationships.Relations {
			if rel.JoinTable == nil {
				continue
			}
			if _, seen := out[rel.JoinTable.Table]; !seen {
				out[rel.JoinTable.Table] = columnsOf(rel.JoinTable)
			}
		}
	}
	return out, nil
}

func columnsOf(s *schema.Schema) []expectedColumn {
	cols := make([]expectedColumn, 0, len(s.DBNames))
	for _, name := range s.DBNames {
		field := s.FieldsByDBName[name]
		if field == nil || field.IgnoreMigration {
			continue
		}
		cols = append(cols, expectedColumn{
			name: strings.ToLower(name),
			typ:  strings.ToLower(field.TagSettings["TYPE"]),
		})
	}
	return cols
}
