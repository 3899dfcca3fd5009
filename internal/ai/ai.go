package ai

import (
	"context"
)

// ProfileAnswers carries the three free-text questionnaire answers sent
// to the scoring collaborator.
type ProfileAnswers struct {
	Intention string
	Values    []string
	Growth    string
}

// ScoreAnalysis is the structured scoring result. Score is on a 0-100
// scale; Reasoning is the collaborator's free-text explanation.
type ScoreAnalysis struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Collaborator is the injected LLM capability. Handlers depend on this
// interface only, so tests can swap in a deterministic stand-in.
type Collaborator interface {
	ScoreProfile(ctx context.Context, answers ProfileAnswers) (*ScoreAnalysis, error)
	GenerateIcebreaker(ctx context.Context, sharedValues []string) (string, error)
}
