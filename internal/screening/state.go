package screening

// State is the current position of one candidate conversation.
type State string

const (
	StateAwaitingCredentials   State = "awaiting_credentials"
	StateAwaitingResume        State = "awaiting_resume"
	StateAwaitingOpeningChoice State = "awaiting_opening_choice"
	StateAwaitingReadiness     State = "awaiting_readiness"
	StateAwaitingAnswers       State = "awaiting_answers"
)
