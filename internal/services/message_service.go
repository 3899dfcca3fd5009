package services

import (
	"errors"
	"time"

	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/types"
	"gorm.io/gorm"
)

// ThreadMessage is one entry of a match's message thread, annotated with
// the sender's email joined from users.
type ThreadMessage struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	SenderID    string    `json:"sender_id"`
	CreatedAt   time.Time `json:"created_at"`
	SenderEmail string    `json:"sender_email"`
}

// FindMatchForUser loads the match with the given id only when the user
// is one of its two members. A missing row and a membership failure are
// indistinguishable to the caller on purpose.
func FindMatchForUser(db *gorm.DB, matchID, userID string) (*models.Match, error) {
	var match models.Match
	err := db.
		Where("id = ?", matchID).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetThread returns the full message thread for a match, oldest first.
func GetThread(db *gorm.DB, matchID string) ([]ThreadMessage, error) {
	messages := make([]ThreadMessage, 0)
	err := db.Table("messages").
		Select("messages.id, messages.content, messages.sender_id, messages.created_at, users.email AS sender_email").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.match_id = ?", matchID).
		Order("messages.created_at ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// InsertMessage appends a message to a match's thread.
func InsertMessage(db *gorm.DB, matchID, senderID, content string) error {
	message := models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	return db.Create(&message).Error
}

// SharedMatchValues loads both members' profiles and intersects their
// value tags, for seeding icebreaker generation.
func SharedMatchValues(db *gorm.DB, match *models.Match) ([]string, error) {
	profile1, err := FindProfile(db, match.User1ID)
	if err != nil {
		return nil, err
	}
	profile2, err := FindProfile(db, match.User2ID)
	if err != nil {
		return nil, err
	}
	return intersectValues(profile1.Values, profile2.Values), nil
}
