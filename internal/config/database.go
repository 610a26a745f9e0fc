package config

import (
	"fmt"

	"blogcap/internal/adapters/database"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// OpenDB connects with the configured driver and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, database.NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// InitDB sets DB or exits.
func InitDB(cfg *Config) {
	var err error
	DB, err = OpenDB(cfg)
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	Logger.Info("✅ Database connected and migrated", zap.String("driver", cfg.DBDriver))
}
