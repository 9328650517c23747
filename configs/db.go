package configs

import (
	"fmt"
	"time"

	"dashboard/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the database and migrates every model.
func ConnectionDB(source string) (*gorm.DB, error) {
	database, err := OpenDatabase(source)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database, nil
}

func OpenDatabase(source string) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// sqlite compares timestamps as text, so every stored time is UTC
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// in-memory sqlite lives as long as one connection does
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return database, nil
}

func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.Role{}, &entity.User{},
		&entity.Restaurant{}, &entity.Ingredient{}, &entity.Menu{},
		&entity.Promotion{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Invoice{},
	)
}
