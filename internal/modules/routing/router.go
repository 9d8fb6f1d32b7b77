package routing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/pkg/ai"
)

// Router translates a free-text question into RouteParams via a single
// inference call. Routing never fails the request: any model or parse error
// yields the fixed fallback parameter set.
type Router struct {
	complete ai.Completer
	logger   *zap.Logger
}

// NewRouter builds a Router on top of the given inference call.
func NewRouter(complete ai.Completer, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{complete: complete, logger: logger}
}

// Route produces the routing decision for a question.
func (r *Router) Route(ctx context.Context, question string) RouteParams {
	prompt := fmt.Sprintf(routerPromptTemplate, question)

	raw, err := r.complete(ctx, "", prompt)
	if err != nil {
		r.logger.Warn("routing inference failed, using fallback params", zap.Error(err))
		return FallbackParams()
	}

	var params RouteParams
	if err := ai.ExtractJSONObject(raw, &params); err != nil {
		r.logger.Warn("routing response had no parseable JSON, using fallback params",
			zap.Int("response_chars", len(raw)))
		return FallbackParams()
	}

	params.Validate()
	r.logger.Debug("routing complete",
		zap.Strings("data_needed", sourcesAsStrings(params.DataNeeded)),
		zap.Strings("states", params.States),
		zap.Strings("years", params.Years))
	return params
}

func sourcesAsStrings(sources []Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = string(s)
	}
	return out
}
