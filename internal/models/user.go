package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an application identity backed by an Authorizer account.
// Created on first profile submission; email is refreshed from the
// session on every submission.
type User struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	AuthID    string `gorm:"type:char(36);uniqueIndex;not null" json:"auth_id"`
	Email     string `gorm:"size:255;not null" json:"email"`
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
