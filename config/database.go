package config

import (
	"fmt"
	"time"

	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase opens a gorm handle over any dialector. Timestamps are written
// in UTC so date range filters behave the same on every backend.
func OpenDatabase(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// ConnectDatabase connects to the configured postgres database.
func ConnectDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := OpenDatabase(postgres.Open(cfg.DSN()))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Dislike{},
		&models.RefreshToken{},
	)
}
