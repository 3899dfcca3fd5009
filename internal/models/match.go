package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is a confirmed pairing between two users, the prerequisite for
// messaging. The pair is logically unordered: at most one row exists per
// pair, whichever way round it was stored.
type Match struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	User1ID   string    `gorm:"type:char(36);not null;index" json:"user1_id"`
	User2ID   string    `gorm:"type:char(36);not null;index" json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *Match) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Match
func (Match) TableName() string {
	return "matches"
}
