package helpers

import (
	"testing"

	"github.com/truematch/truematch-api/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user row and returns it
func CreateTestUser(t *testing.T, db *gorm.DB, authID, email string) *models.User {
	t.Helper()
	user := models.User{
		AuthID: authID,
		Email:  email,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestProfile inserts a profile row for a user
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string, score float64, values []string) *models.Profile {
	t.Helper()
	profile := models.Profile{
		UserID:             userID,
		Intention:          "long-term partnership",
		Values:             models.StringList(values),
		GrowthGoals:        "show up consistently",
		CompatibilityScore: score,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
	return &profile
}

// CreateTestMatch links two users with a match row
func CreateTestMatch(t *testing.T, db *gorm.DB, user1ID, user2ID string) *models.Match {
	t.Helper()
	match := models.Match{
		User1ID: user1ID,
		User2ID: user2ID,
	}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return &match
}

// CreateTestMessage appends a message row to a match thread
func CreateTestMessage(t *testing.T, db *gorm.DB, matchID, senderID, content string) *models.Message {
	t.Helper()
	message := models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := db.Create(&message).Error; err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	return &message
}
