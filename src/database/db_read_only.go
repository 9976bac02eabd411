package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ReadOnlyDB is the read replica connection used by the analytics endpoints.
// The database user for this connection should have SELECT-only permissions.
// When no replica is configured it aliases MainDB.
var ReadOnlyDB *gorm.DB

// InitReadOnlyDB initializes the read-only database connection. It does not
// run any migrations and should only be used for reading data.
func InitReadOnlyDB() error {
	config := GetConfig()

	if config.Driver != "postgres" || config.DatabaseURLReadOnly == "" {
		if MainDB == nil {
			return fmt.Errorf("read-only fallback requires MainDB to be initialized first")
		}
		ReadOnlyDB = MainDB
		logrus.Info("[database] no read replica configured, analytics reads use MainDB")
		return nil
	}

	db, err := gorm.Open(postgres.Open(config.DatabaseURLReadOnly),
		&gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to connect to read-only database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from ReadOnlyDB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping ReadOnlyDB: %w", err)
	}

	var dbName, schema string
	if err := db.
		Raw("SELECT current_database(), current_schema()").
		Row().
		Scan(&dbName, &schema); err != nil {
		return fmt.Errorf("failed to query current db/schema on ReadOnlyDB: %w", err)
	}

	logrus.WithFields(map[string]interface{}{"dbName": dbName, "schema": schema}).
		Info("[ReadOnlyDB] connected")

	ReadOnlyDB = db

	return nil
}
