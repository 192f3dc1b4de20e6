package gateway

import (
	"context"
	"fmt"

	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/pipeline"
	"github.com/lodteam/screening-bot/internal/recruiting"
	"github.com/lodteam/screening-bot/internal/screening"
)

// openingsRanker is the part of the analyzer client the catalog needs.
type openingsRanker interface {
	RankOpenings(resume []byte) (*analyzer.Openings, error)
}

// screeningFetcher is the part of the recruiting client the catalog needs.
type screeningFetcher interface {
	GetScreeningTests(openingID string) ([]*recruiting.ScreeningTest, error)
	GetQuestions(openingID, testID string) ([]*recruiting.Question, error)
}

// Catalog implements screening.Catalog over the analyzer and recruiting
// clients, with an optional openings pipeline applied after ranking.
type Catalog struct {
	Analyzer   openingsRanker
	Recruiting screeningFetcher
	Pipeline   *pipeline.Pipeline
}

func (c *Catalog) RankOpenings(ctx context.Context, resume *screening.Resume) (*analyzer.Openings, error) {
	openings, err := c.Analyzer.RankOpenings(resume.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", screening.ErrAnalysisUnavailable, err)
	}

	if c.Pipeline == nil {
		return openings, nil
	}

	openings, err = c.Pipeline.Run(ctx, resume.Data, openings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", screening.ErrAnalysisUnavailable, err)
	}

	return openings, nil
}

// LatestScreeningTest fetches the most recently defined test for the opening
// with its question set. ErrNoScreeningTest is returned when the opening has
// no tests at all.
func (c *Catalog) LatestScreeningTest(_ context.Context, openingID string) (*recruiting.ScreeningTest, error) {
	tests, err := c.Recruiting.GetScreeningTests(openingID)
	if err != nil {
		return nil, fmt.Errorf("get screening tests: %w", err)
	}

	if len(tests) == 0 {
		return nil, fmt.Errorf("opening %s: %w", openingID, screening.ErrNoScreeningTest)
	}

	latest := tests[len(tests)-1]

	questions, err := c.Recruiting.GetQuestions(openingID, latest.ID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	// A test without questions cannot be taken. Treat it the same as a
	// missing test so the built-in default set kicks in.
	if len(questions) == 0 {
		return nil, fmt.Errorf("test %s: %w", latest.ID, screening.ErrNoScreeningTest)
	}

	return &recruiting.ScreeningTest{
		ID:        latest.ID,
		Questions: questions,
	}, nil
}
