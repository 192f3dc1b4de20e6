package ai

import (
	"context"

	"github.com/lodteam/screening-bot/internal/analyzer"
)

type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

type Matcher interface {
	Evaluate(ctx context.Context, resume string, opening *analyzer.Opening) (*FitAssessment, error)
}
