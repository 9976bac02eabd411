package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradejournal/src/database/migrations"
	"tradejournal/src/model"
)

// MainDB is the primary read/write database connection used by the application.
var MainDB *gorm.DB

func openDialector(config Config, url string) gorm.Dialector {
	if config.Driver == "sqlite" {
		return sqlite.Open(config.SQLitePath)
	}
	return postgres.Open(url)
}

// InitMainDB initializes the main (read/write) database connection and runs
// migrations. This should be called once at application startup.
func InitMainDB() error {
	config := GetConfig()

	db, err := gorm.Open(openDialector(config, config.DatabaseURLMain),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to connect to main database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	// Assign to the global variable only after a successful connection.
	MainDB = db

	logrus.WithField("driver", config.Driver).Info("[database] MainDB connection established")

	// Old deployments stored profit_loss as a text column. Normalize it
	// before AutoMigrate so the numeric column can be created without
	// failing casts.
	if config.Driver == "postgres" {
		if err := migrations.PrepareLegacyOutcomeColumns(MainDB); err != nil {
			return fmt.Errorf("failed to prepare legacy outcome columns: %w", err)
		}
	}

	// Run AutoMigrate only on the main database.
	// Add here all models that belong to the write-side schema.
	if err := MainDB.AutoMigrate(
		&model.User{},
		&model.APIKey{},
		&model.Trade{},
		&migrations.DataMigration{},
	); err != nil {
		return fmt.Errorf("failed to run migrations on MainDB: %w", err)
	}

	if err := migrations.Run(MainDB); err != nil {
		return fmt.Errorf("failed to run data migrations on MainDB: %w", err)
	}

	logrus.Info("[database] MainDB migrations completed")

	return nil
}
