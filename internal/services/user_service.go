package services

import (
	"errors"

	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/types"
	"gorm.io/gorm"
)

// UpsertUser inserts or updates the users row keyed by the external auth
// identifier. Email is refreshed from the session on every call. The
// find-or-create runs in a transaction so concurrent submissions for the
// same identity converge to a single row.
func UpsertUser(db *gorm.DB, authID, email string) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auth_id = ?", authID).
			Assign(map[string]interface{}{"email": email}).
			FirstOrCreate(&user, models.User{AuthID: authID}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByAuthID resolves the users row for a session identity.
func FindUserByAuthID(db *gorm.DB, authID string) (*models.User, error) {
	var user models.User
	if err := db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
