// Package answer turns query results into a natural-language answer with
// inline dataset citations.
package answer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/pkg/ai"
)

// FallbackAnswer is returned when the model call fails. The pipeline still
// completes; only the prose is degraded.
const FallbackAnswer = "Error generating answer. Please try again."

const answerPromptTemplate = `You are an expert agricultural data analyst with access to multiple comprehensive datasets. Answer this question using the provided data.

Question: %s

Available Data:
%s

Data Sources Used:
%s

IMPORTANT Instructions:
1. Answer the question accurately and completely
2. Include specific numbers and statistics from the data
3. For EVERY data point mentioned, cite the source using this format: [Source: dataset_name]
4. If the data includes "years_used", "note", or "metadata" fields, EXPLICITLY mention which years the data covers
5. If NO DATA is found (empty data array), check the "metadata" field for "available_years" and tell the user what years ARE available
6. If comparing multiple entities, present in a clear structured format
7. If showing trends, describe the pattern clearly
8. Be transparent about the time period covered by the data
9. Keep the answer concise but comprehensive
10. You have access to multiple datasets:
    - District-wise Crop Production (2013-2014): District-level crop data
    - APEDA Production (2019-2024): State-level aggregated production for recent years
    - Daily Rainfall (2019-2024): District-wise daily rainfall
    - Historical Rainfall (1901-2015): State-wise historical rainfall with monthly/seasonal/annual data
    - Choose and mention the most relevant dataset(s) for the query

Provide your answer:`

// Synthesizer produces the final answer text. It never returns an error to
// the pipeline; failed inference degrades to FallbackAnswer.
type Synthesizer struct {
	complete ai.Completer
	logger   *zap.Logger
}

func NewSynthesizer(complete ai.Completer, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{complete: complete, logger: logger}
}

// Generate renders the answer prompt with the raw results and citations and
// asks the model for prose.
func (s *Synthesizer) Generate(ctx context.Context, question string, results engine.Results, citations []engine.Citation) string {
	resultsJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		s.logger.Error("marshal results for answer prompt", zap.Error(err))
		return FallbackAnswer
	}
	citationsJSON, err := json.MarshalIndent(citations, "", "  ")
	if err != nil {
		s.logger.Error("marshal citations for answer prompt", zap.Error(err))
		return FallbackAnswer
	}

	prompt := fmt.Sprintf(answerPromptTemplate, question, resultsJSON, citationsJSON)

	text, err := s.complete(ctx, "", prompt)
	if err != nil {
		s.logger.Error("answer generation failed", zap.Error(err))
		return FallbackAnswer
	}
	if text == "" {
		return FallbackAnswer
	}
	return text
}
