package recruiting

import "fmt"

// ScreeningTest is an ordered set of multiple choice questions attached to
// one opening.
type ScreeningTest struct {
	ID        string      `json:"id,omitempty"`
	Questions []*Question `json:"questions,omitempty"`
}

type Question struct {
	ID      string    `json:"id,omitempty"`
	Text    string    `json:"text,omitempty"`
	Answers []*Answer `json:"answers,omitempty"`
}

type Answer struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

// GetScreeningTests returns the screening tests defined for the opening,
// oldest first. Questions are not populated.
func (c *Client) GetScreeningTests(openingID string) ([]*ScreeningTest, error) {
	url := fmt.Sprintf("%s/api/vacancies/%s/screening-tests", c.APIURL, openingID)

	var tests []*ScreeningTest
	if err := c.getData(url, &tests); err != nil {
		return nil, err
	}

	return tests, nil
}

// GetQuestions returns the ordered question set of one screening test.
func (c *Client) GetQuestions(openingID, testID string) ([]*Question, error) {
	url := fmt.Sprintf("%s/api/vacancies/%s/screening-tests/%s/questions", c.APIURL, openingID, testID)

	var questions []*Question
	if err := c.getData(url, &questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func (q *Question) AnswerTexts() []string {
	texts := make([]string, 0, len(q.Answers))

	for _, answer := range q.Answers {
		texts = append(texts, answer.Text)
	}

	return texts
}

func (q *Question) FindAnswerByText(text string) *Answer {
	for _, answer := range q.Answers {
		if answer.Text == text {
			return answer
		}
	}

	return nil
}
