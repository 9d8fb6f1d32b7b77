package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/project-samarth/core/internal/modules/engine"
)

func TestGeneratePassesDataIntoPrompt(t *testing.T) {
	var captured string
	s := NewSynthesizer(func(_ context.Context, _, prompt string) (string, error) {
		captured = prompt
		return "the answer", nil
	}, nil)

	results := engine.Results{"rainfall": {{Type: "rainfall_data", Note: "three wet years"}}}
	citations := []engine.Citation{{Dataset: "Rainfall in India"}}

	got := s.Generate(context.Background(), "How wet was Punjab?", results, citations)
	assert.Equal(t, "the answer", got)
	assert.Contains(t, captured, "How wet was Punjab?")
	assert.Contains(t, captured, "three wet years")
	assert.Contains(t, captured, "Rainfall in India")
}

func TestGenerateFallsBackOnModelError(t *testing.T) {
	s := NewSynthesizer(func(context.Context, string, string) (string, error) {
		return "", errors.New("quota exceeded")
	}, nil)

	got := s.Generate(context.Background(), "q", engine.Results{}, nil)
	assert.Equal(t, FallbackAnswer, got)
}

func TestGenerateFallsBackOnEmptyResponse(t *testing.T) {
	s := NewSynthesizer(func(context.Context, string, string) (string, error) {
		return "", nil
	}, nil)

	got := s.Generate(context.Background(), "q", engine.Results{}, nil)
	assert.Equal(t, FallbackAnswer, got)
}
