package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/handlers"
	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/services"
)

// TestSubmitProfile tests the POST /api/submit-profile endpoint
func TestSubmitProfile(t *testing.T) {
	db := setupTestDB(t)
	fake := &fakeCollaborator{score: 78, reasoning: "thoughtful answers"}

	app := fiber.New()
	handler := &handlers.ProfileHandler{DB: db, AI: fake, Log: testLogger(), AITimeout: time.Second}
	app.Post("/api/submit-profile", sessionMiddleware("auth-1", "user@example.com"), handler.SubmitProfile)

	reqBody := map[string]interface{}{
		"intention": "long-term partnership",
		"values":    []string{"honesty", "curiosity"},
		"growth":    "communicate better",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/submit-profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["success"] != true {
		t.Error("Expected success=true")
	}
	if result["compatibility_score"] != float64(78) {
		t.Errorf("Expected compatibility_score 78, got %v", result["compatibility_score"])
	}
	if result["reasoning"] != "thoughtful answers" {
		t.Errorf("Expected reasoning passthrough, got %v", result["reasoning"])
	}

	// User and profile rows were upserted
	user, err := services.FindUserByAuthID(db, "auth-1")
	if err != nil {
		t.Fatalf("Expected user row: %v", err)
	}
	profile, err := services.FindProfile(db, user.ID)
	if err != nil {
		t.Fatalf("Expected profile row: %v", err)
	}
	if profile.CompatibilityScore != 78 {
		t.Errorf("Expected stored score 78, got %v", profile.CompatibilityScore)
	}
	if len(profile.Values) != 2 {
		t.Errorf("Expected 2 stored values, got %v", profile.Values)
	}
}

// TestSubmitProfileScalarValues tests the bare string values normalization
func TestSubmitProfileScalarValues(t *testing.T) {
	db := setupTestDB(t)
	fake := &fakeCollaborator{score: 50, reasoning: "ok"}

	app := fiber.New()
	handler := &handlers.ProfileHandler{DB: db, AI: fake, Log: testLogger(), AITimeout: time.Second}
	app.Post("/api/submit-profile", sessionMiddleware("auth-1", "user@example.com"), handler.SubmitProfile)

	req := httptest.NewRequest("POST", "/api/submit-profile",
		bytes.NewReader([]byte(`{"intention":"dating","values":"trust","growth":"patience"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if fake.scoredAnswers == nil || len(fake.scoredAnswers.Values) != 1 || fake.scoredAnswers.Values[0] != "trust" {
		t.Errorf("Expected scalar value wrapped as [trust], got %+v", fake.scoredAnswers)
	}
}

// TestSubmitProfileAIFailure tests the generic 500 on scoring failure
func TestSubmitProfileAIFailure(t *testing.T) {
	db := setupTestDB(t)
	fake := &fakeCollaborator{err: errFakeAI}

	app := fiber.New()
	handler := &handlers.ProfileHandler{DB: db, AI: fake, Log: testLogger(), AITimeout: time.Second}
	app.Post("/api/submit-profile", sessionMiddleware("auth-1", "user@example.com"), handler.SubmitProfile)

	req := httptest.NewRequest("POST", "/api/submit-profile",
		bytes.NewReader([]byte(`{"intention":"dating","values":["trust"],"growth":""}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["error"] != "Failed to submit profile" {
		t.Errorf("Expected generic error message, got %v", result["error"])
	}

	// No profile row on failure
	var count int64
	db.Model(&models.Profile{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no profile rows after failure, got %d", count)
	}
}

// TestSubmitProfileBadBody tests malformed JSON rejection
func TestSubmitProfileBadBody(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.ProfileHandler{DB: db, AI: &fakeCollaborator{}, Log: testLogger(), AITimeout: time.Second}
	app.Post("/api/submit-profile", sessionMiddleware("auth-1", "user@example.com"), handler.SubmitProfile)

	req := httptest.NewRequest("POST", "/api/submit-profile", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}
