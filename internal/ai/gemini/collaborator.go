package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/truematch/truematch-api/internal/ai"
	"github.com/truematch/truematch-api/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Collaborator implements ai.Collaborator on top of a Gemini content generator.
type Collaborator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

const scorePromptFormat = `Analyze these dating profile answers and generate a compatibility score between 0-100 based on self-awareness, emotional intelligence, and relationship readiness:
Relationship Intention: %s
Core Values: %s
Growth Goals: %s`

const icebreakerPromptFormat = "Generate a thoughtful conversation prompt or question based on these shared values: %s"

// scoreSchema mirrors the structured-output contract: an object with a
// numeric score and a string reasoning, nothing else.
var scoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":     {Type: genai.TypeNumber},
		"reasoning": {Type: genai.TypeString},
	},
	Required: []string{"score", "reasoning"},
}

func NewCollaborator(generator contentGenerator, log *zap.Logger, maxLogLength int) *Collaborator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Collaborator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ScoreProfile asks Gemini for a structured compatibility analysis of the
// questionnaire answers. Any malformed or out-of-range result is an
// error; there are no retries.
func (c *Collaborator) ScoreProfile(ctx context.Context, answers ai.ProfileAnswers) (*ai.ScoreAnalysis, error) {
	prompt := fmt.Sprintf(scorePromptFormat,
		answers.Intention,
		strings.Join(answers.Values, ", "),
		answers.Growth,
	)

	c.logger.Debug("gemini score request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateJSON(ctx, prompt, scoreSchema)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini score response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, c.maxLogLen)),
	)

	return parseAnalysis(raw)
}

// GenerateIcebreaker asks Gemini for a free-text conversation starter
// seeded with the pair's shared values.
func (c *Collaborator) GenerateIcebreaker(ctx context.Context, sharedValues []string) (string, error) {
	prompt := fmt.Sprintf(icebreakerPromptFormat, strings.Join(sharedValues, ", "))

	c.logger.Debug("gemini icebreaker request",
		zap.Strings("shared_values", sharedValues),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("gemini icebreaker response",
		zap.String("response_preview", logger.TruncateForLog(raw, c.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

func parseAnalysis(raw string) (*ai.ScoreAnalysis, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	reasoning := coerceString(data["reasoning"])

	if math.IsNaN(score) {
		return nil, fmt.Errorf("gemini response is missing a numeric score")
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("gemini score %v is out of the 0-100 range", score)
	}
	if reasoning == "" {
		return nil, fmt.Errorf("gemini response is missing reasoning")
	}

	return &ai.ScoreAnalysis{
		Score:     score,
		Reasoning: reasoning,
	}, nil
}

// extractJSON strips a markdown code fence when the model wraps its JSON
// in one despite the JSON response mode.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}
