package pipeline

import (
	"context"
	"fmt"

	"github.com/lodteam/screening-bot/internal/analyzer"
	"go.uber.org/zap"
)

// Filter represents a single post-processing step applied to ranked openings
// before they are shown to the candidate.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, resume []byte, o *analyzer.Openings) (*analyzer.Openings, Step, error)
}

// Step describes the result of executing one step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Pipeline executes filters sequentially in the order they were registered.
type Pipeline struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		steps:  steps,
		logger: logger,
	}
}

// Run applies the enabled steps to the openings list, preserving order of the
// surviving items.
func (p *Pipeline) Run(ctx context.Context, resume []byte, o *analyzer.Openings) (*analyzer.Openings, error) {
	for _, step := range p.steps {
		if !step.IsEnabled() {
			p.logger.Info("pipeline step disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, resume, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		p.logger.Info("pipeline step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		o = next
	}

	return o, nil
}
