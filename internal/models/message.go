package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message belongs to exactly one match. Append-only: no edit or delete
// operations exist, and threads are read in created_at ascending order.
type Message struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	MatchID   string    `gorm:"type:char(36);not null;index" json:"match_id"`
	SenderID  string    `gorm:"type:char(36);not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
