package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/pipeline"
	"github.com/lodteam/screening-bot/internal/recruiting"
	"github.com/lodteam/screening-bot/internal/screening"
	"go.uber.org/zap"
)

type stubRanker struct {
	openings *analyzer.Openings
	err      error
	resume   []byte
}

func (s *stubRanker) RankOpenings(resume []byte) (*analyzer.Openings, error) {
	s.resume = resume
	if s.err != nil {
		return nil, s.err
	}

	return s.openings, nil
}

type stubFetcher struct {
	tests        []*recruiting.ScreeningTest
	testsErr     error
	questions    []*recruiting.Question
	questionsErr error

	requestedTestID string
}

func (s *stubFetcher) GetScreeningTests(string) ([]*recruiting.ScreeningTest, error) {
	return s.tests, s.testsErr
}

func (s *stubFetcher) GetQuestions(_, testID string) ([]*recruiting.Question, error) {
	s.requestedTestID = testID
	return s.questions, s.questionsErr
}

func testResume() *screening.Resume {
	return &screening.Resume{Data: []byte("golang resume"), FileName: "resume", FileExtension: "txt"}
}

func TestRankOpeningsPassesResumeThrough(t *testing.T) {
	t.Parallel()

	ranker := &stubRanker{openings: &analyzer.Openings{Items: []*analyzer.Opening{
		{ID: "op-1", Title: "Go Developer"},
	}}}
	catalog := &Catalog{Analyzer: ranker}

	openings, err := catalog.RankOpenings(context.Background(), testResume())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(ranker.resume) != "golang resume" {
		t.Fatalf("expected raw resume bytes forwarded, got %q", ranker.resume)
	}
	if openings.Len() != 1 {
		t.Fatalf("expected 1 opening, got %d", openings.Len())
	}
}

func TestRankOpeningsWrapsAnalyzerFailure(t *testing.T) {
	t.Parallel()

	catalog := &Catalog{Analyzer: &stubRanker{err: errors.New("connection refused")}}

	_, err := catalog.RankOpenings(context.Background(), testResume())
	if !errors.Is(err, screening.ErrAnalysisUnavailable) {
		t.Fatalf("expected ErrAnalysisUnavailable, got %v", err)
	}
}

func TestRankOpeningsAppliesPipeline(t *testing.T) {
	t.Parallel()

	ranker := &stubRanker{openings: &analyzer.Openings{Items: []*analyzer.Opening{
		{ID: "op-1", Title: "Go Developer"},
		{ID: "op-1", Title: "Go Developer (mirror)"},
		{ID: "op-2", Title: "Data Engineer"},
	}}}
	catalog := &Catalog{
		Analyzer: ranker,
		Pipeline: pipeline.New([]pipeline.Filter{pipeline.NewDedupe()}, zap.NewNop()),
	}

	openings, err := catalog.RankOpenings(context.Background(), testResume())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if openings.Len() != 2 {
		t.Fatalf("expected duplicates dropped, got %d openings", openings.Len())
	}
}

func TestLatestScreeningTestPicksLastDefined(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		tests: []*recruiting.ScreeningTest{
			{ID: "test-1"},
			{ID: "test-2"},
			{ID: "test-3"},
		},
		questions: []*recruiting.Question{
			{ID: "q-1", Text: "first?"},
		},
	}
	catalog := &Catalog{Recruiting: fetcher}

	test, err := catalog.LatestScreeningTest(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if test.ID != "test-3" {
		t.Fatalf("expected the last test, got %q", test.ID)
	}
	if fetcher.requestedTestID != "test-3" {
		t.Fatalf("expected questions requested for test-3, got %q", fetcher.requestedTestID)
	}
	if len(test.Questions) != 1 {
		t.Fatalf("expected questions attached, got %d", len(test.Questions))
	}
}

func TestLatestScreeningTestWithoutTests(t *testing.T) {
	t.Parallel()

	catalog := &Catalog{Recruiting: &stubFetcher{}}

	_, err := catalog.LatestScreeningTest(context.Background(), "op-1")
	if !errors.Is(err, screening.ErrNoScreeningTest) {
		t.Fatalf("expected ErrNoScreeningTest, got %v", err)
	}
}

func TestLatestScreeningTestWithoutQuestions(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		tests: []*recruiting.ScreeningTest{{ID: "test-1"}},
	}
	catalog := &Catalog{Recruiting: fetcher}

	_, err := catalog.LatestScreeningTest(context.Background(), "op-1")
	if !errors.Is(err, screening.ErrNoScreeningTest) {
		t.Fatalf("expected ErrNoScreeningTest for an empty question set, got %v", err)
	}
}

func TestLatestScreeningTestServiceFailure(t *testing.T) {
	t.Parallel()

	catalog := &Catalog{Recruiting: &stubFetcher{testsErr: errors.New("bad status: 502 Bad Gateway")}}

	_, err := catalog.LatestScreeningTest(context.Background(), "op-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, screening.ErrNoScreeningTest) {
		t.Fatalf("a service failure must not look like a missing test: %v", err)
	}
}
