package pipeline

import (
	"context"

	"github.com/lodteam/screening-bot/internal/analyzer"
)

type dedupeFilter struct{}

// NewDedupe creates a filter that drops openings with a repeated id. The
// keyboard presentation matches by title, so duplicates would make the
// candidate's choice ambiguous.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Disable(string) {}

func (f *dedupeFilter) IsEnabled() bool { return true }

func (f *dedupeFilter) Apply(_ context.Context, _ []byte, o *analyzer.Openings) (*analyzer.Openings, Step, error) {
	initial := o.Len()
	dropped := o.Dedupe()

	return o, Step{Initial: initial, Dropped: len(dropped), Left: o.Len()}, nil
}
