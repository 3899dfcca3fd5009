package services

import (
	"encoding/json"
	"errors"

	"github.com/truematch/truematch-api/internal/ai"
	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpsertProfile inserts or replaces the single profiles row for a user.
// Every field is overwritten on resubmission; no history is retained.
// The map assign keeps zero scores from being skipped the way a struct
// assign would.
func UpsertProfile(db *gorm.DB, userID, intention string, values []string, growth string, analysis *ai.ScoreAnalysis) (*models.Profile, error) {
	rawAnalysis, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}
	analysisJSON := models.JSON{JSON: datatypes.JSON(rawAnalysis)}

	var profile models.Profile
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).
			Assign(map[string]interface{}{
				"intention":           intention,
				"values":              models.StringList(values),
				"growth_goals":        growth,
				"compatibility_score": analysis.Score,
				"analysis":            analysisJSON,
			}).
			FirstOrCreate(&profile, models.Profile{UserID: userID}).Error
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// FindProfile loads the profile for a user.
func FindProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
