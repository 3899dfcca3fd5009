package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/ai"
	"github.com/truematch/truematch-api/internal/models"
	"github.com/truematch/truematch-api/internal/services"
	"github.com/truematch/truematch-api/internal/types"
	"github.com/truematch/truematch-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageHandler handles match messaging routes
type MessageHandler struct {
	DB        *gorm.DB
	AI        ai.Collaborator
	Log       *zap.Logger
	AITimeout time.Duration
}

// sendMessageRequest is the messaging payload. When GeneratePrompt is
// set the content is replaced with an icebreaker built from the pair's
// shared values.
type sendMessageRequest struct {
	MatchID        string `json:"matchId"`
	Content        string `json:"content"`
	GeneratePrompt bool   `json:"generatePrompt"`
}

// threadResponse defines the schema for message threads
type threadResponse struct {
	Messages []services.ThreadMessage `json:"messages"`
}

// GetThread handles GET /api/matches/:matchId/messages
// @Summary Get a match's message thread
// @Description Returns the full thread, oldest first, for a match the caller belongs to
// @Tags Messages
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} handlers.threadResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /matches/{matchId}/messages [get]
func (h *MessageHandler) GetThread(c *fiber.Ctx) error {
	user, errResp := h.resolveUser(c)
	if errResp != nil {
		return errResp(c)
	}

	matchID := c.Params("matchId")
	if _, err := services.FindMatchForUser(h.DB, matchID, user.ID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Match not found or unauthorized")
		}
		h.Log.Error("messages: match lookup failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	return h.respondThread(c, matchID)
}

// SendMessage handles POST /api/send-message
// @Summary Send a message in a match thread
// @Description Appends a message, optionally generating an icebreaker from shared values, and returns the updated thread
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body handlers.sendMessageRequest true "Message"
// @Success 200 {object} handlers.threadResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /send-message [post]
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	user, errResp := h.resolveUser(c)
	if errResp != nil {
		return errResp(c)
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.InvalidInputResponse(c)
	}

	match, err := services.FindMatchForUser(h.DB, req.MatchID, user.ID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Match not found or unauthorized")
		}
		h.Log.Error("messages: match lookup failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	content := req.Content
	if req.GeneratePrompt {
		shared, err := services.SharedMatchValues(h.DB, match)
		if err != nil {
			h.Log.Error("messages: shared values lookup failed", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), h.AITimeout)
		defer cancel()

		content, err = h.AI.GenerateIcebreaker(ctx, shared)
		if err != nil {
			h.Log.Error("messages: icebreaker generation failed", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
		}
	}

	// An empty post without a prompt request is a fetch: return the
	// thread as-is, never insert a blank row.
	if strings.TrimSpace(content) != "" {
		if err := services.InsertMessage(h.DB, match.ID, user.ID, content); err != nil {
			h.Log.Error("messages: insert failed", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
		}
	}

	return h.respondThread(c, match.ID)
}

// resolveUser maps the session identity to a stored user row. The
// second return is a ready error responder when resolution fails.
func (h *MessageHandler) resolveUser(c *fiber.Ctx) (*models.User, func(*fiber.Ctx) error) {
	authID, _, ok := sessionUser(c)
	if !ok {
		return nil, utils.UnauthorizedResponse
	}

	user, err := services.FindUserByAuthID(h.DB, authID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, func(c *fiber.Ctx) error {
				return utils.NotFoundResponse(c, "User not found")
			}
		}
		h.Log.Error("messages: user lookup failed", zap.Error(err))
		return nil, func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
		}
	}

	return user, nil
}

func (h *MessageHandler) respondThread(c *fiber.Ctx, matchID string) error {
	messages, err := services.GetThread(h.DB, matchID)
	if err != nil {
		h.Log.Error("messages: thread fetch failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return c.Status(fiber.StatusOK).JSON(threadResponse{Messages: messages})
}
