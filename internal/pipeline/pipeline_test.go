package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lodteam/screening-bot/internal/ai"
	"github.com/lodteam/screening-bot/internal/analyzer"
	"go.uber.org/zap"
)

func rankedOpenings() *analyzer.Openings {
	return &analyzer.Openings{Items: []*analyzer.Opening{
		{ID: "op-1", Title: "Go Developer"},
		{ID: "op-2", Title: "Data Engineer"},
		{ID: "op-1", Title: "Go Developer (mirror)"},
		{ID: "op-3", Title: "SRE"},
	}}
}

func TestDedupeDropsRepeatedIDs(t *testing.T) {
	t.Parallel()

	p := New([]Filter{NewDedupe()}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Len() != 3 {
		t.Fatalf("expected 3 openings, got %d", out.Len())
	}
	if titles := out.Titles(); titles[0] != "Go Developer" || titles[2] != "SRE" {
		t.Fatalf("order not preserved: %v", titles)
	}
}

func TestLimitCapsTheList(t *testing.T) {
	t.Parallel()

	p := New([]Filter{NewLimit(2)}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("expected 2 openings, got %d", out.Len())
	}
}

func TestLimitDisabledWhenZero(t *testing.T) {
	t.Parallel()

	limit := NewLimit(0)
	if limit.IsEnabled() {
		t.Fatalf("expected zero limit to be disabled")
	}

	p := New([]Filter{limit}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 4 {
		t.Fatalf("expected the list untouched, got %d openings", out.Len())
	}
}

func TestStepsRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	// Dedupe before limit keeps a unique opening that a mirrored entry
	// would otherwise push over the cap.
	p := New([]Filter{NewDedupe(), NewLimit(3)}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Len() != 3 {
		t.Fatalf("expected 3 openings, got %d", out.Len())
	}
	if out.FindByID("op-3") == nil {
		t.Fatalf("expected op-3 to survive, got %v", out.Titles())
	}
}

type stubMatcher struct {
	fitByID map[string]bool
	err     error
	calls   int
}

func (m *stubMatcher) Evaluate(_ context.Context, _ string, opening *analyzer.Opening) (*ai.FitAssessment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	return &ai.FitAssessment{Fit: m.fitByID[opening.ID], Score: 0.5}, nil
}

func TestAIFitDropsRejectedOpenings(t *testing.T) {
	t.Parallel()

	matcher := &stubMatcher{fitByID: map[string]bool{"op-1": true, "op-3": true}}
	p := New([]Filter{NewDedupe(), NewAIFit(matcher, zap.NewNop())}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("expected 2 approved openings, got %d", out.Len())
	}
	if out.FindByID("op-2") != nil {
		t.Fatalf("expected op-2 rejected, got %v", out.Titles())
	}
}

func TestAIFitKeepsOpeningsOnProviderError(t *testing.T) {
	t.Parallel()

	matcher := &stubMatcher{err: errors.New("provider down")}
	p := New([]Filter{NewAIFit(matcher, zap.NewNop())}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 4 {
		t.Fatalf("expected all openings kept, got %d", out.Len())
	}
}

func TestAIFitDisabledWithoutMatcher(t *testing.T) {
	t.Parallel()

	filter := NewAIFit(nil, zap.NewNop())
	if filter.IsEnabled() {
		t.Fatalf("expected the step disabled without a matcher")
	}

	p := New([]Filter{filter}, zap.NewNop())

	out, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 4 {
		t.Fatalf("expected the list untouched, got %d openings", out.Len())
	}
}

type failingFilter struct{}

func (f *failingFilter) Name() string    { return "failing" }
func (f *failingFilter) Disable(string)  {}
func (f *failingFilter) IsEnabled() bool { return true }

func (f *failingFilter) Apply(context.Context, []byte, *analyzer.Openings) (*analyzer.Openings, Step, error) {
	return nil, Step{}, errors.New("boom")
}

func TestRunWrapsStepErrorWithName(t *testing.T) {
	t.Parallel()

	p := New([]Filter{&failingFilter{}}, zap.NewNop())

	_, err := p.Run(context.Background(), []byte("resume"), rankedOpenings())
	if err == nil {
		t.Fatalf("expected error from failing step")
	}
	if !strings.HasPrefix(err.Error(), "failing:") {
		t.Fatalf("expected the step name in the error, got %q", err)
	}
}
