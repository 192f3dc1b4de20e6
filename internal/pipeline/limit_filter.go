package pipeline

import (
	"context"

	"github.com/lodteam/screening-bot/internal/analyzer"
)

type limitFilter struct {
	max int
}

// NewLimit creates a filter that caps the list at max openings. The list is
// ranked best first, so the tail is the least relevant part.
func NewLimit(max int) Filter {
	return &limitFilter{max: max}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Disable(string) {}

func (f *limitFilter) IsEnabled() bool { return f.max > 0 }

func (f *limitFilter) Apply(_ context.Context, _ []byte, o *analyzer.Openings) (*analyzer.Openings, Step, error) {
	initial := o.Len()
	dropped := o.Truncate(f.max)

	return o, Step{Initial: initial, Dropped: len(dropped), Left: o.Len()}, nil
}
