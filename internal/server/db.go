// Package server manages the ResearchSynthesis database layer.
// It initializes GORM with SQLite and runs migrations for the document store.
package server

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/researchsynth/researchsynth/internal/config"
	"github.com/researchsynth/researchsynth/internal/models"
	"github.com/researchsynth/researchsynth/internal/system"
)

var DB *gorm.DB

// InitDB opens the database and runs AutoMigrate.
func InitDB(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return fmt.Errorf("unsupported db_driver %q (only 'sqlite' is supported)", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	DB = db
	system.Logger.Info("database opened", "driver", cfg.DBDriver, "path", cfg.DBPath)
	return nil
}
