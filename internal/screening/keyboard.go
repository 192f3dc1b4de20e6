package screening

import (
	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/recruiting"
)

// Choice is one labeled button. A non-empty URL makes it a link button,
// otherwise it is a plain reply choice.
type Choice struct {
	Label string
	URL   string
}

// Reply is one outbound message: a prompt plus an optional choice set. Links
// and Keyboard are mutually exclusive in practice but nothing enforces it.
type Reply struct {
	Text     string
	Links    []Choice
	Keyboard []Choice
}

func TextReply(text string) *Reply {
	return &Reply{Text: text}
}

// OpeningLinks renders openings as URL-carrying buttons, preserving order.
func OpeningLinks(openings []*analyzer.Opening) []Choice {
	choices := make([]Choice, 0, len(openings))

	for _, opening := range openings {
		choices = append(choices, Choice{Label: opening.Title, URL: opening.URL})
	}

	return choices
}

// OpeningKeyboard renders openings as plain reply choices, preserving order.
func OpeningKeyboard(openings []*analyzer.Opening) []Choice {
	choices := make([]Choice, 0, len(openings))

	for _, opening := range openings {
		choices = append(choices, Choice{Label: opening.Title})
	}

	return choices
}

// AnswerKeyboard renders the question's answers as reply choices, preserving order.
func AnswerKeyboard(question *recruiting.Question) []Choice {
	choices := make([]Choice, 0, len(question.Answers))

	for _, answer := range question.Answers {
		choices = append(choices, Choice{Label: answer.Text})
	}

	return choices
}

func ReadinessKeyboard() []Choice {
	return []Choice{{Label: StartTestButton}}
}
