// Package ai provides the language-model call used by the query router and
// the answer generator. Providers are configured in the app config; the rest
// of the codebase only sees the Completer function type so tests can stub it.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	appcfg "github.com/project-samarth/core/internal/config"
)

// Completer performs a single text completion: system prompt + user prompt in,
// raw model text out.
type Completer func(ctx context.Context, systemPrompt, prompt string) (string, error)

// ErrNoProvider is returned when no enabled provider matches an assignment.
var ErrNoProvider = errors.New("no enabled AI provider configured")

// NewCompleter builds a Completer bound to the given provider.
func NewCompleter(provider *appcfg.AIProvider, maxTokens int) Completer {
	return func(ctx context.Context, systemPrompt, prompt string) (string, error) {
		return complete(ctx, provider, systemPrompt, prompt, maxTokens)
	}
}

// SelectProvider resolves a model assignment against the configured providers.
// The assignment may name a provider ID and override its default model.
func SelectProvider(cfg appcfg.AIConfig, assignment *appcfg.AIModelAssignment) *appcfg.AIProvider {
	var providerID string
	var overrideModel string
	if assignment != nil {
		providerID = strings.TrimSpace(assignment.ProviderID)
		overrideModel = strings.TrimSpace(assignment.Model)
	}

	pick := func(provider appcfg.AIProvider) *appcfg.AIProvider {
		selected := provider
		if overrideModel != "" {
			selected.DefaultModel = overrideModel
		}
		return &selected
	}

	if providerID != "" {
		for _, provider := range cfg.Providers {
			if !provider.Enabled {
				continue
			}
			if strings.TrimSpace(provider.ID) != providerID {
				continue
			}
			return pick(provider)
		}
	}

	for _, provider := range cfg.Providers {
		if !provider.Enabled {
			continue
		}
		return pick(provider)
	}

	return nil
}

// ExtractJSONObject parses the first balanced {...} object found in a model
// response. Models are not trusted to return only JSON; fenced blocks and
// surrounding prose are tolerated.
func ExtractJSONObject(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("invalid JSON response from AI")
}
