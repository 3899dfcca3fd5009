package services_test

import (
	"testing"

	"github.com/truematch/truematch-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Match{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createUser inserts a user row for tests
func createUser(t *testing.T, db *gorm.DB, authID, email string) *models.User {
	t.Helper()
	user := models.User{AuthID: authID, Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// createProfile inserts a profile row for tests
func createProfile(t *testing.T, db *gorm.DB, userID string, score float64, values []string) *models.Profile {
	t.Helper()
	profile := models.Profile{
		UserID:             userID,
		Intention:          "long-term partnership",
		Values:             models.StringList(values),
		GrowthGoals:        "listen more",
		CompatibilityScore: score,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
	return &profile
}
