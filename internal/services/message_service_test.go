package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/services"
	"github.com/truematch/truematch-api/internal/types"
)

// TestFindMatchForUser verifies membership checks on match lookup
func TestFindMatchForUser(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "auth-alice", "alice@example.com")
	bob := createUser(t, db, "auth-bob", "bob@example.com")
	carol := createUser(t, db, "auth-carol", "carol@example.com")

	match := models.Match{User1ID: alice.ID, User2ID: bob.ID}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	// Both members can see the match
	for _, member := range []string{alice.ID, bob.ID} {
		if _, err := services.FindMatchForUser(db, match.ID, member); err != nil {
			t.Errorf("Expected member %s to find match, got %v", member, err)
		}
	}

	// A non-member gets not found
	if _, err := services.FindMatchForUser(db, match.ID, carol.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-member, got %v", err)
	}

	// An unknown match id gets not found
	if _, err := services.FindMatchForUser(db, "missing", alice.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing match, got %v", err)
	}
}

// TestGetThread verifies ordering and the sender email join
func TestGetThread(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "auth-alice", "alice@example.com")
	bob := createUser(t, db, "auth-bob", "bob@example.com")

	match := models.Match{User1ID: alice.ID, User2ID: bob.ID}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	first := models.Message{MatchID: match.ID, SenderID: alice.ID, Content: "hello", CreatedAt: base}
	second := models.Message{MatchID: match.ID, SenderID: bob.ID, Content: "hi there", CreatedAt: base.Add(time.Minute)}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}

	thread, err := services.GetThread(db, match.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}

	if len(thread) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(thread))
	}
	if thread[0].Content != "hello" || thread[1].Content != "hi there" {
		t.Errorf("Thread out of order: %q then %q", thread[0].Content, thread[1].Content)
	}
	if thread[0].SenderEmail != "alice@example.com" {
		t.Errorf("Expected sender email alice@example.com, got %q", thread[0].SenderEmail)
	}
	if thread[1].SenderID != bob.ID {
		t.Errorf("Expected sender id %s, got %s", bob.ID, thread[1].SenderID)
	}
}

// TestGetThreadEmpty verifies an empty thread comes back as an empty slice
func TestGetThreadEmpty(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "auth-alice", "alice@example.com")
	bob := createUser(t, db, "auth-bob", "bob@example.com")

	match := models.Match{User1ID: alice.ID, User2ID: bob.ID}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	thread, err := services.GetThread(db, match.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if thread == nil || len(thread) != 0 {
		t.Errorf("Expected empty slice, got %v", thread)
	}
}

// TestInsertMessage verifies a message lands in the thread
func TestInsertMessage(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "auth-alice", "alice@example.com")
	bob := createUser(t, db, "auth-bob", "bob@example.com")

	match := models.Match{User1ID: alice.ID, User2ID: bob.ID}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	if err := services.InsertMessage(db, match.ID, alice.ID, "first!"); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}

	thread, err := services.GetThread(db, match.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if len(thread) != 1 || thread[0].Content != "first!" {
		t.Errorf("Expected one message 'first!', got %v", thread)
	}
}

// TestSharedMatchValues verifies the intersection of both members' tags
func TestSharedMatchValues(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "auth-alice", "alice@example.com")
	createProfile(t, db, alice.ID, 85, []string{"honesty", "hiking", "reading"})
	bob := createUser(t, db, "auth-bob", "bob@example.com")
	createProfile(t, db, bob.ID, 80, []string{"hiking", "honesty", "cooking"})

	match := models.Match{User1ID: alice.ID, User2ID: bob.ID}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	shared, err := services.SharedMatchValues(db, &match)
	if err != nil {
		t.Fatalf("SharedMatchValues failed: %v", err)
	}

	// Order follows the first member's list
	if len(shared) != 2 || shared[0] != "honesty" || shared[1] != "hiking" {
		t.Errorf("Expected [honesty hiking], got %v", shared)
	}
}
