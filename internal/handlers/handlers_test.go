package handlers_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/ai"
	"github.com/truematch/truematch-api/internal/models"
	"go.uber.org/zap"
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

// sessionMiddleware stands in for the auth middleware by injecting the
// session user map directly
func sessionMiddleware(authID, email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"id":    authID,
			"email": email,
		})
		return c.Next()
	}
}

// fakeCollaborator is a deterministic ai.Collaborator stand-in
type fakeCollaborator struct {
	score      float64
	reasoning  string
	icebreaker string
	err        error

	scoredAnswers *ai.ProfileAnswers
	sharedValues  []string
}

func (f *fakeCollaborator) ScoreProfile(_ context.Context, answers ai.ProfileAnswers) (*ai.ScoreAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.scoredAnswers = &answers
	return &ai.ScoreAnalysis{Score: f.score, Reasoning: f.reasoning}, nil
}

func (f *fakeCollaborator) GenerateIcebreaker(_ context.Context, sharedValues []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sharedValues = sharedValues
	if f.icebreaker != "" {
		return f.icebreaker, nil
	}
	return "What first drew you to " + strings.Join(sharedValues, ", ") + "?", nil
}

var errFakeAI = errors.New("model unavailable")

func testLogger() *zap.Logger {
	return zap.NewNop()
}
