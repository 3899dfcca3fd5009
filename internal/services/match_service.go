package services

import (
	"errors"
	"math"
	"sort"

	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/types"
	"gorm.io/gorm"
)

// ErrMatchExists is returned when a match row already links the pair in
// either direction.
var ErrMatchExists = errors.New("match already exists")

// ErrInvalidPair is returned when a match is requested for a malformed
// pair (missing or identical user ids).
var ErrInvalidPair = errors.New("invalid user pair")

const maxMatchResults = 10

// MatchCandidate is one entry of the discovery result. CompatibilityScore
// here is the pairwise match percentage, not the profile's raw score.
type MatchCandidate struct {
	ID                 string   `json:"id"`
	CompatibilityScore int      `json:"compatibilityScore"`
	SharedValues       []string `json:"sharedValues"`

	sharedCount int
}

// DiscoverMatches ranks every other profile against the requesting
// user's profile. Candidates already linked by a matches row (either
// direction) or sharing no value tags are excluded. Results are ordered
// by match percentage desc, then shared-value count desc, then candidate
// id asc, and capped at 10.
func DiscoverMatches(db *gorm.DB, userID string) ([]MatchCandidate, error) {
	profile, err := FindProfile(db, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// No profile yet: nothing to rank against.
			return []MatchCandidate{}, nil
		}
		return nil, err
	}

	var candidates []models.Profile
	err = db.
		Where("user_id <> ?", userID).
		Where(`NOT EXISTS (
			SELECT 1 FROM matches
			WHERE (matches.user1_id = ? AND matches.user2_id = profiles.user_id)
			   OR (matches.user1_id = profiles.user_id AND matches.user2_id = ?)
		)`, userID, userID).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	results := make([]MatchCandidate, 0, len(candidates))
	for _, cand := range candidates {
		shared := intersectValues(profile.Values, cand.Values)
		if len(shared) == 0 {
			continue
		}

		results = append(results, MatchCandidate{
			ID:                 cand.UserID,
			CompatibilityScore: matchPercentage(profile.CompatibilityScore, cand.CompatibilityScore),
			SharedValues:       shared,
			sharedCount:        len(shared),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CompatibilityScore != results[j].CompatibilityScore {
			return results[i].CompatibilityScore > results[j].CompatibilityScore
		}
		if results[i].sharedCount != results[j].sharedCount {
			return results[i].sharedCount > results[j].sharedCount
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > maxMatchResults {
		results = results[:maxMatchResults]
	}

	return results, nil
}

// CreateMatch inserts a match row after verifying the pair is valid,
// both users exist, and no row links them in either direction yet.
func CreateMatch(db *gorm.DB, user1ID, user2ID string) (*models.Match, error) {
	if user1ID == "" || user2ID == "" || user1ID == user2ID {
		return nil, ErrInvalidPair
	}

	var match models.Match
	err := db.Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Model(&models.User{}).
			Where("id IN ?", []string{user1ID, user2ID}).
			Count(&userCount).Error; err != nil {
			return err
		}
		if userCount != 2 {
			return ErrInvalidPair
		}

		var existing int64
		if err := tx.Model(&models.Match{}).
			Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
				user1ID, user2ID, user2ID, user1ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrMatchExists
		}

		match = models.Match{User1ID: user1ID, User2ID: user2ID}
		return tx.Create(&match).Error
	})
	if err != nil {
		return nil, err
	}

	return &match, nil
}

// matchPercentage maps the absolute score difference onto a 0-100
// percentage: identical scores are a perfect match, and every point of
// difference costs two points, floored at zero.
func matchPercentage(a, b float64) int {
	diff := math.Abs(a - b)
	if diff == 0 {
		return 100
	}
	return int(math.Round(math.Max(0, 100-2*diff)))
}

// intersectValues returns the deduplicated intersection of two tag
// lists, in the order tags appear in the first list.
func intersectValues(a, b models.StringList) []string {
	shared := make([]string, 0, len(a))
	seen := make(map[string]struct{}, len(a))
	for _, tag := range a {
		if _, dup := seen[tag]; dup {
			continue
		}
		if b.Contains(tag) {
			shared = append(shared, tag)
			seen[tag] = struct{}{}
		}
	}
	return shared
}
