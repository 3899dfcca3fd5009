package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/truematch/truematch-api/internal/ai"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type stubGenerator struct {
	content string
	json    string
	err     error

	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.content, s.err
}

func (s *stubGenerator) GenerateJSON(_ context.Context, prompt string, _ *genai.Schema) (string, error) {
	s.lastPrompt = prompt
	return s.json, s.err
}

func newTestCollaborator(stub *stubGenerator) *Collaborator {
	return NewCollaborator(stub, zap.NewNop(), 0)
}

func TestScoreProfile(t *testing.T) {
	stub := &stubGenerator{json: `{"score": 82, "reasoning": "Shows strong self-awareness."}`}
	c := newTestCollaborator(stub)

	analysis, err := c.ScoreProfile(context.Background(), ai.ProfileAnswers{
		Intention: "long-term partnership",
		Values:    []string{"honesty", "curiosity"},
		Growth:    "communicate sooner",
	})
	if err != nil {
		t.Fatalf("ScoreProfile failed: %v", err)
	}

	if analysis.Score != 82 {
		t.Errorf("expected score 82, got %v", analysis.Score)
	}
	if analysis.Reasoning != "Shows strong self-awareness." {
		t.Errorf("unexpected reasoning: %q", analysis.Reasoning)
	}

	// The prompt carries all three answers
	for _, part := range []string{"long-term partnership", "honesty, curiosity", "communicate sooner"} {
		if !strings.Contains(stub.lastPrompt, part) {
			t.Errorf("prompt is missing %q:\n%s", part, stub.lastPrompt)
		}
	}
}

func TestScoreProfileFencedResponse(t *testing.T) {
	stub := &stubGenerator{json: "```json\n{\"score\": 55, \"reasoning\": \"ok\"}\n```"}
	c := newTestCollaborator(stub)

	analysis, err := c.ScoreProfile(context.Background(), ai.ProfileAnswers{})
	if err != nil {
		t.Fatalf("ScoreProfile failed: %v", err)
	}
	if analysis.Score != 55 {
		t.Errorf("expected score 55, got %v", analysis.Score)
	}
}

func TestScoreProfileStringScore(t *testing.T) {
	stub := &stubGenerator{json: `{"score": "64.5", "reasoning": "ok"}`}
	c := newTestCollaborator(stub)

	analysis, err := c.ScoreProfile(context.Background(), ai.ProfileAnswers{})
	if err != nil {
		t.Fatalf("ScoreProfile failed: %v", err)
	}
	if analysis.Score != 64.5 {
		t.Errorf("expected score 64.5, got %v", analysis.Score)
	}
}

func TestScoreProfileInvalid(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"not json", "the model rambled instead"},
		{"missing score", `{"reasoning": "ok"}`},
		{"score out of range", `{"score": 140, "reasoning": "ok"}`},
		{"negative score", `{"score": -3, "reasoning": "ok"}`},
		{"missing reasoning", `{"score": 70}`},
		{"blank reasoning", `{"score": 70, "reasoning": "  "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCollaborator(&stubGenerator{json: tc.json})
			if _, err := c.ScoreProfile(context.Background(), ai.ProfileAnswers{}); err == nil {
				t.Errorf("expected error for %q", tc.json)
			}
		})
	}
}

func TestScoreProfileGeneratorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	c := newTestCollaborator(&stubGenerator{err: wantErr})

	if _, err := c.ScoreProfile(context.Background(), ai.ProfileAnswers{}); !errors.Is(err, wantErr) {
		t.Errorf("expected generator error, got %v", err)
	}
}

func TestGenerateIcebreaker(t *testing.T) {
	stub := &stubGenerator{content: "  What does honesty look like for you day to day?\n"}
	c := newTestCollaborator(stub)

	prompt, err := c.GenerateIcebreaker(context.Background(), []string{"honesty", "hiking"})
	if err != nil {
		t.Fatalf("GenerateIcebreaker failed: %v", err)
	}
	if prompt != "What does honesty look like for you day to day?" {
		t.Errorf("expected trimmed response, got %q", prompt)
	}
	if !strings.Contains(stub.lastPrompt, "honesty, hiking") {
		t.Errorf("prompt is missing the shared values: %s", stub.lastPrompt)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n{\"a\":1}  ", `{"a":1}`},
		{"`{\"a\":1}`", `{"a":1}`},
	}

	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
