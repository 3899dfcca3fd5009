package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/services"
	"github.com/truematch/truematch-api/internal/types"
	"github.com/truematch/truematch-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchHandler handles match discovery and administration routes
type MatchHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// matchListResponse defines the schema for discovery results
type matchListResponse struct {
	Matches []services.MatchCandidate `json:"matches"`
}

// createMatchRequest is the admin payload linking two users
type createMatchRequest struct {
	User1ID string `json:"user1_id"`
	User2ID string `json:"user2_id"`
}

// ListMatches handles GET /api/matches
// @Summary List compatible matches
// @Description Ranks unmatched profiles against the caller's by shared values and score proximity
// @Tags Matches
// @Produce json
// @Success 200 {object} handlers.matchListResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *fiber.Ctx) error {
	authID, _, ok := sessionUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c)
	}

	user, err := services.FindUserByAuthID(h.DB, authID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "User profile not found")
		}
		h.Log.Error("matches: user lookup failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch matches")
	}

	matches, err := services.DiscoverMatches(h.DB, user.ID)
	if err != nil {
		h.Log.Error("matches: discovery failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch matches")
	}

	return c.Status(fiber.StatusOK).JSON(matchListResponse{Matches: matches})
}

// CreateMatch handles POST /api/matches
// @Summary Create a match
// @Description Links two users as a mutual match (admin only)
// @Tags Matches
// @Accept json
// @Produce json
// @Param request body handlers.createMatchRequest true "User pair"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *fiber.Ctx) error {
	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.InvalidInputResponse(c)
	}

	match, err := services.CreateMatch(h.DB, req.User1ID, req.User2ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPair):
			return utils.InvalidInputResponse(c)
		case errors.Is(err, services.ErrMatchExists):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Match already exists")
		default:
			h.Log.Error("matches: create failed", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create match")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       match.ID,
		"user1_id": match.User1ID,
		"user2_id": match.User2ID,
	})
}
