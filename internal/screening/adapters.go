package screening

import (
	"context"
	"errors"
	"time"

	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/recruiting"
)

var (
	// ErrAnalysisUnavailable means the analysis service errored or returned
	// a malformed payload. The candidate may resubmit the resume.
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")
	// ErrNoScreeningTest means the opening defines no screening test. The
	// machine substitutes the built-in default question set.
	ErrNoScreeningTest = errors.New("no screening test defined")
	// ErrSubmissionFailed means the recruiting service rejected or never
	// received a candidate or results payload.
	ErrSubmissionFailed = errors.New("submission failed")
)

// Catalog provides ranked openings for a resume and the question set of a
// chosen opening.
type Catalog interface {
	RankOpenings(ctx context.Context, resume *Resume) (*analyzer.Openings, error)
	LatestScreeningTest(ctx context.Context, openingID string) (*recruiting.ScreeningTest, error)
}

// Submitter creates the candidate record and posts the final answers.
type Submitter interface {
	CreateCandidate(ctx context.Context, openingID string, creds Credentials, resume *Resume) (string, error)
	SubmitAnswers(ctx context.Context, openingID, candidateID, testID string, answers []GivenAnswer, startedAt, endedAt time.Time) error
}
