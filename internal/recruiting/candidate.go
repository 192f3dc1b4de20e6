package recruiting

import (
	"fmt"
	"time"
)

// Candidate is the payload for creating a candidate record. The resume is
// carried base64-encoded inside ResumeFile.
type Candidate struct {
	FirstName string      `json:"firstName"`
	SurName   string      `json:"surName"`
	PatrName  string      `json:"patrName"`
	Contact   string      `json:"contact"`
	Resume    *ResumeFile `json:"resume"`
}

type ResumeFile struct {
	Data          string `json:"data"`
	FileName      string `json:"fileName"`
	FileExtension string `json:"fileExtension"`
}

type CreatedCandidate struct {
	ID string `json:"id,omitempty"`
}

// CandidateAnswer is one picked answer, keyed by question.
type CandidateAnswer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}

// Results is the final submission for one passed screening test.
type Results struct {
	CandidateAnswers []*CandidateAnswer `json:"candidateAnswers"`
	StartDate        string             `json:"startDate"`
	EndDate          string             `json:"endDate"`
}

// CreateCandidate registers the candidate for the opening and returns the
// created record.
func (c *Client) CreateCandidate(openingID string, candidate *Candidate) (*CreatedCandidate, error) {
	url := fmt.Sprintf("%s/api/vacancies/%s/candidates", c.APIURL, openingID)

	var created CreatedCandidate
	if err := c.postJSON(url, candidate, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// SubmitResults posts the collected answers and timing for the candidate.
func (c *Client) SubmitResults(openingID, candidateID, testID string, results *Results) error {
	url := fmt.Sprintf("%s/api/vacancies/%s/candidates/%s/screening-tests/%s/results",
		c.APIURL, openingID, candidateID, testID)

	return c.postJSON(url, results, nil)
}

// NewResults builds a Results payload with ISO-8601 timestamps.
func NewResults(answers []*CandidateAnswer, startedAt, endedAt time.Time) *Results {
	return &Results{
		CandidateAnswers: answers,
		StartDate:        startedAt.Format(time.RFC3339),
		EndDate:          endedAt.Format(time.RFC3339),
	}
}
