package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// RequiredTables lists the tables the catalog schema depends on.
var RequiredTables = []string{"journal", "publisher", "link", "excelfilehistory", "setting"}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	// Normalize types to lowercase
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifySchema checks that every required table exists and has columns.
// It returns the list of tables that are missing or unreadable.
func VerifySchema(db *gorm.DB) []string {
	var missing []string
	for _, table := range RequiredTables {
		cols, err := GetTableColumns(db, table)
		if err != nil || len(cols) == 0 {
			missing = append(missing, table)
		}
	}
	return missing
}
