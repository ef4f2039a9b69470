package database

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meetowner_crm/pkg/config"
)

// Open connects to PostgreSQL and sizes the pool. The returned handle is
// passed explicitly to every component that needs it.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // avoids prepared statement clashes behind poolers
	}

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	}

	db, err := gorm.Open(postgres.New(pgConfig), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	log.Info("Database connected successfully")
	return db, nil
}

func MigrateDatabase(db *gorm.DB, models ...interface{}) error {
	for _, model := range models {
		if !db.Migrator().HasTable(model) {
			if err := db.Migrator().CreateTable(model); err != nil {
				return err
			}
			log.Infof("Created table for %T", model)
		} else {
			if err := db.Migrator().AutoMigrate(model); err != nil {
				return err
			}
			log.Debugf("Updated table for %T", model)
		}
	}
	return nil
}
