package screening

import (
	"strings"
	"time"

	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/recruiting"
)

// Credentials identify the candidate for the recruiting service.
type Credentials struct {
	FirstName string
	SurName   string
	PatrName  string
	Contact   string
}

// Resume is the raw resume payload as received from the candidate.
type Resume struct {
	Data          []byte
	FileName      string
	FileExtension string
}

// GivenAnswer is one picked answer, keyed by question.
type GivenAnswer struct {
	QuestionID string
	AnswerID   string
}

// Session is the per-candidate conversation record. It owns its opening and
// question snapshots: they are copies of what the external services returned,
// so catalog changes cannot corrupt an in-progress test.
type Session struct {
	ID              string
	State           State
	Credentials     Credentials
	Resume          Resume
	Openings        []*analyzer.Opening
	ChosenOpeningID string
	ScreeningTestID string
	Questions       []*recruiting.Question
	CurrentQuestion int
	Answers         []GivenAnswer
	StartedAt       time.Time
	EndedAt         time.Time
	CandidateID     string
}

func newSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateAwaitingCredentials,
	}
}

// SetOpenings stores a deep copy of the ranked openings.
func (s *Session) SetOpenings(openings *analyzer.Openings) {
	copied := make([]*analyzer.Opening, 0, openings.Len())
	for _, opening := range openings.Items {
		clone := *opening
		copied = append(copied, &clone)
	}

	s.Openings = copied
}

// SetScreeningTest stores a deep copy of the test's question set.
func (s *Session) SetScreeningTest(test *recruiting.ScreeningTest) {
	copied := make([]*recruiting.Question, 0, len(test.Questions))
	for _, question := range test.Questions {
		clone := *question
		clone.Answers = make([]*recruiting.Answer, 0, len(question.Answers))
		for _, answer := range question.Answers {
			answerClone := *answer
			clone.Answers = append(clone.Answers, &answerClone)
		}
		copied = append(copied, &clone)
	}

	s.ScreeningTestID = test.ID
	s.Questions = copied
}

func (s *Session) FindOpeningByTitle(title string) *analyzer.Opening {
	for _, opening := range s.Openings {
		if opening.Title == title {
			return opening
		}
	}

	return nil
}

func (s *Session) CurrentQuestionItem() *recruiting.Question {
	if s.CurrentQuestion < 0 || s.CurrentQuestion >= len(s.Questions) {
		return nil
	}

	return s.Questions[s.CurrentQuestion]
}

// ResetCycle clears the test data after a successful submission. The session
// identity and credentials survive so the candidate can request a new batch
// of openings.
func (s *Session) ResetCycle() {
	s.Openings = nil
	s.ChosenOpeningID = ""
	s.ScreeningTestID = ""
	s.Questions = nil
	s.CurrentQuestion = 0
	s.Answers = nil
}

// SplitFullName splits a full name into first, sur and patronymic parts by
// whitespace. Tokens beyond the third are ignored; missing parts stay empty.
func SplitFullName(full string) (first, sur, patr string) {
	tokens := strings.Fields(full)

	if len(tokens) > 0 {
		first = tokens[0]
	}
	if len(tokens) > 1 {
		sur = tokens[1]
	}
	if len(tokens) > 2 {
		patr = tokens[2]
	}

	return first, sur, patr
}
