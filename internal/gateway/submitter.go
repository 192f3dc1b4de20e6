package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/lodteam/screening-bot/internal/recruiting"
	"github.com/lodteam/screening-bot/internal/screening"
)

// candidateCreator is the part of the recruiting client the submitter needs.
type candidateCreator interface {
	CreateCandidate(openingID string, candidate *recruiting.Candidate) (*recruiting.CreatedCandidate, error)
	SubmitResults(openingID, candidateID, testID string, results *recruiting.Results) error
}

// Submitter implements screening.Submitter over the recruiting client.
type Submitter struct {
	Recruiting candidateCreator
}

func (s *Submitter) CreateCandidate(_ context.Context, openingID string, creds screening.Credentials, resume *screening.Resume) (string, error) {
	candidate := &recruiting.Candidate{
		FirstName: creds.FirstName,
		SurName:   creds.SurName,
		PatrName:  creds.PatrName,
		Contact:   creds.Contact,
		Resume: &recruiting.ResumeFile{
			Data:          base64.StdEncoding.EncodeToString(resume.Data),
			FileName:      resume.FileName,
			FileExtension: resume.FileExtension,
		},
	}

	created, err := s.Recruiting.CreateCandidate(openingID, candidate)
	if err != nil {
		return "", fmt.Errorf("%w: create candidate: %v", screening.ErrSubmissionFailed, err)
	}

	return created.ID, nil
}

func (s *Submitter) SubmitAnswers(_ context.Context, openingID, candidateID, testID string, answers []screening.GivenAnswer, startedAt, endedAt time.Time) error {
	converted := make([]*recruiting.CandidateAnswer, 0, len(answers))
	for _, answer := range answers {
		converted = append(converted, &recruiting.CandidateAnswer{
			QuestionID: answer.QuestionID,
			AnswerID:   answer.AnswerID,
		})
	}

	results := recruiting.NewResults(converted, startedAt, endedAt)

	if err := s.Recruiting.SubmitResults(openingID, candidateID, testID, results); err != nil {
		return fmt.Errorf("%w: submit results: %v", screening.ErrSubmissionFailed, err)
	}

	return nil
}
