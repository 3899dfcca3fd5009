package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/ai"
	"github.com/truematch/truematch-api/internal/services"
	"github.com/truematch/truematch-api/internal/types"
	"github.com/truematch/truematch-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileHandler handles questionnaire submission routes
type ProfileHandler struct {
	DB        *gorm.DB
	AI        ai.Collaborator
	Log       *zap.Logger
	AITimeout time.Duration
}

// submitProfileRequest is the questionnaire payload. Values tolerates a
// bare string as well as a JSON array.
type submitProfileRequest struct {
	Intention string                 `json:"intention"`
	Values    types.FlexList[string] `json:"values"`
	Growth    string                 `json:"growth"`
}

// submitProfileResponse defines the schema for profile submissions
type submitProfileResponse struct {
	Success            bool    `json:"success"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Reasoning          string  `json:"reasoning"`
}

// SubmitProfile handles POST /api/submit-profile
// @Summary Submit questionnaire answers
// @Description Scores the submitted answers and upserts the user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body handlers.submitProfileRequest true "Questionnaire answers"
// @Success 200 {object} handlers.submitProfileResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submit-profile [post]
func (h *ProfileHandler) SubmitProfile(c *fiber.Ctx) error {
	authID, email, ok := sessionUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c)
	}

	var req submitProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.InvalidInputResponse(c)
	}

	user, err := services.UpsertUser(h.DB, authID, email)
	if err != nil {
		h.Log.Error("submit-profile: upsert user failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit profile")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.AITimeout)
	defer cancel()

	analysis, err := h.AI.ScoreProfile(ctx, ai.ProfileAnswers{
		Intention: req.Intention,
		Values:    req.Values.Slice(),
		Growth:    req.Growth,
	})
	if err != nil {
		h.Log.Error("submit-profile: scoring failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit profile")
	}

	if _, err = services.UpsertProfile(h.DB, user.ID, req.Intention, req.Values.Slice(), req.Growth, analysis); err != nil {
		h.Log.Error("submit-profile: upsert profile failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit profile")
	}

	return c.Status(fiber.StatusOK).JSON(submitProfileResponse{
		Success:            true,
		CompatibilityScore: analysis.Score,
		Reasoning:          analysis.Reasoning,
	})
}
