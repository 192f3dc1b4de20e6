package pipeline

import (
	"context"

	"github.com/lodteam/screening-bot/internal/ai"
	"github.com/lodteam/screening-bot/internal/analyzer"
	"go.uber.org/zap"
)

type aiFitFilter struct {
	disabled bool
	reason   string
	matcher  ai.Matcher
	logger   *zap.Logger
}

// NewAIFit creates a filter that drops openings the AI provider considers a
// bad fit for the resume. A nil matcher disables the step.
func NewAIFit(matcher ai.Matcher, logger *zap.Logger) Filter {
	f := &aiFitFilter{matcher: matcher, logger: logger}
	if matcher == nil {
		f.Disable("matcher is not configured")
	}

	return f
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Apply(ctx context.Context, resume []byte, o *analyzer.Openings) (*analyzer.Openings, Step, error) {
	initial := o.Len()
	approved := make([]*analyzer.Opening, 0, initial)

	for _, opening := range o.Items {
		assessment, err := f.matcher.Evaluate(ctx, string(resume), opening)
		if err != nil {
			// An unreachable provider must not hide openings from the
			// candidate. Keep the opening and move on.
			f.logger.Warn("AI evaluation failed",
				zap.String("opening_id", opening.ID),
				zap.Error(err),
			)
			approved = append(approved, opening)
			continue
		}

		if !assessment.Fit {
			f.logger.Info("opening rejected by AI provider",
				zap.String("opening_id", opening.ID),
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			continue
		}

		f.logger.Info("opening approved by AI provider",
			zap.String("opening_id", opening.ID),
			zap.Float64("ai_score", assessment.Score),
		)
		approved = append(approved, opening)
	}

	o.Items = approved

	return o, Step{Initial: initial, Dropped: initial - len(approved), Left: o.Len()}, nil
}
