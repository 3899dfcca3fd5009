package models

import (
	"time"
)

// Profile holds a user's questionnaire answers plus the compatibility
// score derived from them. One row per user; each submission replaces
// all fields. Analysis keeps the collaborator's latest raw result
// ({score, reasoning}) so reasoning can be re-displayed later.
type Profile struct {
	UserID             string     `gorm:"type:char(36);primaryKey" json:"user_id"`
	Intention          string     `gorm:"type:text;not null" json:"intention"`
	Values             StringList `json:"values"`
	GrowthGoals        string     `gorm:"type:text" json:"growth_goals"`
	CompatibilityScore float64    `gorm:"not null;default:0" json:"compatibility_score"`
	Analysis           JSON       `json:"analysis"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName overrides the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
