package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Service is what app wiring needs from either backend.
type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
}

// Open picks the backend by driver name: "postgres" (default) or "sqlite".
func Open(log *logger.Logger, driver, sqlitePath string) (Service, error) {
	switch driver {
	case "", "postgres":
		return NewPostgresService(log)
	case "sqlite":
		return NewSQLiteService(log, sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
