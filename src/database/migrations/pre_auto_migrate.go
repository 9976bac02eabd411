package migrations

import (
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// PrepareLegacyOutcomeColumns normalizes schemas that previously stored trade
// outcome amounts as strings so that AutoMigrate can safely create numeric
// columns without failing to cast legacy values.
func PrepareLegacyOutcomeColumns(db *gorm.DB) error {
	columns := []string{"profit_loss", "reward_amount", "risk_amount"}

	for _, column := range columns {
		columnType, exists, err := lookupColumnType(db, "trades", column)
		if err != nil {
			return fmt.Errorf("inspect trades.%s: %w", column, err)
		}
		if !exists || !isStringy(columnType) {
			continue
		}

		// Preserve the raw values, drop the string column, and recreate it
		// numeric with whatever parses back cleanly.
		legacy := "legacy_" + column
		if err := db.Exec(fmt.Sprintf("ALTER TABLE trades ADD COLUMN IF NOT EXISTS %s varchar(64)", legacy)).Error; err != nil {
			return fmt.Errorf("add %s: %w", legacy, err)
		}
		if err := db.Exec(fmt.Sprintf("UPDATE trades SET %s = %s WHERE %s IS NOT NULL AND %s <> ''", legacy, column, column, column)).Error; err != nil {
			return fmt.Errorf("backfill %s: %w", legacy, err)
		}
		if err := db.Exec(fmt.Sprintf("ALTER TABLE trades DROP COLUMN %s", column)).Error; err != nil {
			return fmt.Errorf("drop string %s: %w", column, err)
		}
		if err := db.Exec(fmt.Sprintf("ALTER TABLE trades ADD COLUMN %s numeric", column)).Error; err != nil {
			return fmt.Errorf("add numeric %s: %w", column, err)
		}
		if err := db.Exec(fmt.Sprintf("UPDATE trades SET %s = %s::numeric WHERE %s ~ '^-?[0-9]+(\\.[0-9]+)?$'", column, legacy, legacy)).Error; err != nil {
			return fmt.Errorf("restore numeric %s: %w", column, err)
		}
	}

	return nil
}

func lookupColumnType(db *gorm.DB, table, column string) (dataType string, exists bool, err error) {
	row := db.Raw(
		`SELECT data_type FROM information_schema.columns WHERE table_name = ? AND column_name = ?`,
		table,
		column,
	).Row()

	if scanErr := row.Scan(&dataType); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, scanErr
	}

	return dataType, true, nil
}

func isStringy(dataType string) bool {
	dataType = strings.ToLower(dataType)
	return strings.Contains(dataType, "char") || strings.Contains(dataType, "text")
}
