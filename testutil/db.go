// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := config.OpenDatabase(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts an active user with a hashed password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, staff bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hash,
		FirstName: username + "_first",
		LastName:  username + "_last",
		IsStaff:   staff,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// CreatePost inserts a post owned by user.
func CreatePost(t *testing.T, db *gorm.DB, user *models.User, text string) *models.Post {
	t.Helper()

	p := &models.Post{UserID: user.ID, Text: text}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
