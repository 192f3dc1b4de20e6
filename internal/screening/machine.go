package screening

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lodteam/screening-bot/internal/recruiting"
	"go.uber.org/zap"
)

const (
	defaultTextFileName  = "textfile"
	defaultFileExtension = "txt"
)

type InputKind int

const (
	// KindText is free text or a pressed reply-keyboard button.
	KindText InputKind = iota
	// KindDocument is an attached file. The payload is fetched lazily so a
	// broken download surfaces inside the machine, not in the transport.
	KindDocument
	// KindStart restarts the conversation from scratch.
	KindStart
)

// Document is an attachment reference. Fetch downloads the payload and is the
// only place a malformed attachment can fail.
type Document struct {
	Name  string
	Fetch func(ctx context.Context) ([]byte, error)
}

// Input is one inbound message resolved to a session.
type Input struct {
	SessionID string
	Kind      InputKind
	Text      string
	Document  *Document
	// Contact is the sender's contact handle as known to the transport.
	Contact string
}

// Machine validates each input against the session's current state, mutates
// the session and produces the next prompts. All adapter failures are caught
// here and turned into localized replies; none escape to the transport.
type Machine struct {
	store     *Store
	catalog   Catalog
	submitter Submitter
	logger    *zap.Logger
	fallback  *recruiting.ScreeningTest
	now       func() time.Time
}

type Option func(*Machine)

// WithClock replaces the machine's time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithFallbackTest replaces the built-in default question set.
func WithFallbackTest(test *recruiting.ScreeningTest) Option {
	return func(m *Machine) { m.fallback = test }
}

func NewMachine(store *Store, catalog Catalog, submitter Submitter, logger *zap.Logger, opts ...Option) (*Machine, error) {
	fallback, err := DefaultScreeningTest()
	if err != nil {
		return nil, err
	}

	m := &Machine{
		store:     store,
		catalog:   catalog,
		submitter: submitter,
		logger:    logger,
		fallback:  fallback,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Handle processes one inbound message. The returned replies are handed to
// the transport for delivery in order. The error is reserved for misuse
// (empty session id); conversation-level failures become replies.
func (m *Machine) Handle(ctx context.Context, in *Input) ([]*Reply, error) {
	if in == nil || in.SessionID == "" {
		return nil, errors.New("input with a session id is required")
	}

	var replies []*Reply
	err := m.store.WithSession(in.SessionID, func(s *Session) error {
		replies = m.dispatch(ctx, s, in)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return replies, nil
}

func (m *Machine) dispatch(ctx context.Context, s *Session, in *Input) []*Reply {
	if in.Kind == KindStart {
		*s = *newSession(s.ID)
		return []*Reply{TextReply(MsgGreeting)}
	}

	switch s.State {
	case StateAwaitingCredentials:
		return m.handleCredentials(s, in)
	case StateAwaitingResume:
		return m.handleResume(ctx, s, in)
	case StateAwaitingOpeningChoice:
		return m.handleOpeningChoice(ctx, s, in)
	case StateAwaitingReadiness:
		return m.handleReadiness(s, in)
	case StateAwaitingAnswers:
		return m.handleAnswer(ctx, s, in)
	default:
		m.logger.Warn("session in unknown state, restarting",
			zap.String("session_id", s.ID),
			zap.String("state", string(s.State)),
		)
		*s = *newSession(s.ID)
		return []*Reply{TextReply(MsgGreeting)}
	}
}

func (m *Machine) handleCredentials(s *Session, in *Input) []*Reply {
	if in.Kind != KindText || strings.TrimSpace(in.Text) == "" {
		return []*Reply{TextReply(MsgAskName)}
	}

	first, sur, patr := SplitFullName(in.Text)
	s.Credentials = Credentials{
		FirstName: first,
		SurName:   sur,
		PatrName:  patr,
		Contact:   in.Contact,
	}
	s.State = StateAwaitingResume

	return []*Reply{TextReply(MsgAskResume)}
}

func (m *Machine) handleResume(ctx context.Context, s *Session, in *Input) []*Reply {
	var resume Resume
	var ack string

	switch in.Kind {
	case KindDocument:
		if in.Document == nil || in.Document.Fetch == nil {
			return []*Reply{TextReply(MsgFileBroken)}
		}

		data, err := in.Document.Fetch(ctx)
		if err != nil {
			m.logger.Warn("downloading resume attachment",
				zap.String("session_id", s.ID),
				zap.Error(err),
			)
			return []*Reply{TextReply(MsgFileBroken)}
		}

		name, ext := splitFileName(in.Document.Name)
		resume = Resume{Data: data, FileName: name, FileExtension: ext}
		ack = MsgFileAccepted
	case KindText:
		resume = Resume{
			Data:          []byte(in.Text),
			FileName:      defaultTextFileName,
			FileExtension: defaultFileExtension,
		}
		ack = MsgResumeAccepted
	default:
		return []*Reply{TextReply(MsgAskResume)}
	}

	s.Resume = resume

	openings, err := m.catalog.RankOpenings(ctx, &s.Resume)
	if err != nil {
		m.logger.Warn("ranking openings",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		return []*Reply{TextReply(ack), TextReply(MsgAnalyzerError)}
	}

	s.SetOpenings(openings)
	s.State = StateAwaitingOpeningChoice

	m.logger.Info("openings ranked",
		zap.String("session_id", s.ID),
		zap.Int("count", len(s.Openings)),
	)

	return []*Reply{
		TextReply(ack),
		{Text: MsgOpeningsArrived, Links: OpeningLinks(s.Openings)},
		{Text: MsgChooseOpening, Keyboard: OpeningKeyboard(s.Openings)},
	}
}

func (m *Machine) handleOpeningChoice(ctx context.Context, s *Session, in *Input) []*Reply {
	if in.Kind != KindText {
		return []*Reply{TextReply(MsgChooseFromKeyboard)}
	}

	opening := s.FindOpeningByTitle(in.Text)
	if opening == nil {
		return []*Reply{TextReply(MsgChooseFromKeyboard)}
	}

	test, err := m.catalog.LatestScreeningTest(ctx, opening.ID)
	switch {
	case errors.Is(err, ErrNoScreeningTest):
		test = m.fallback
		m.logger.Info("opening has no screening test, using built-in set",
			zap.String("session_id", s.ID),
			zap.String("opening_id", opening.ID),
		)
	case err == nil && (test == nil || len(test.Questions) == 0):
		// A takeable test always has at least one question. Substitute the
		// built-in set rather than letting the session reach the answering
		// step with nothing to ask.
		test = m.fallback
		m.logger.Warn("screening test has no questions, using built-in set",
			zap.String("session_id", s.ID),
			zap.String("opening_id", opening.ID),
		)
	case err != nil:
		m.logger.Warn("fetching screening test",
			zap.String("session_id", s.ID),
			zap.String("opening_id", opening.ID),
			zap.Error(err),
		)
		return []*Reply{TextReply(MsgScreeningError)}
	}

	s.ChosenOpeningID = opening.ID
	s.SetScreeningTest(test)
	s.State = StateAwaitingReadiness

	return []*Reply{{Text: MsgGoodChoice, Keyboard: ReadinessKeyboard()}}
}

func (m *Machine) handleReadiness(s *Session, in *Input) []*Reply {
	// Anything but the start token is noise and is ignored on purpose.
	if in.Kind != KindText || in.Text != StartTestButton {
		return nil
	}

	s.CurrentQuestion = 0
	s.Answers = []GivenAnswer{}
	s.StartedAt = m.now()
	s.State = StateAwaitingAnswers

	question := s.CurrentQuestionItem()

	return []*Reply{
		TextReply(MsgLetsGo),
		{Text: question.Text, Keyboard: AnswerKeyboard(question)},
	}
}

func (m *Machine) handleAnswer(ctx context.Context, s *Session, in *Input) []*Reply {
	question := s.CurrentQuestionItem()
	if question == nil {
		// Should not happen: the index is maintained as a valid one while
		// answering. Restart the cycle instead of crashing the session.
		s.ResetCycle()
		s.State = StateAwaitingResume
		return []*Reply{TextReply(MsgAskResume)}
	}

	if in.Kind != KindText {
		return []*Reply{TextReply(MsgChooseAnswer)}
	}

	answer := question.FindAnswerByText(in.Text)
	if answer == nil {
		return []*Reply{TextReply(MsgChooseAnswer)}
	}

	// A retried final answer after a failed submission is already collected;
	// appending again would double-count it.
	if len(s.Answers) == s.CurrentQuestion {
		s.Answers = append(s.Answers, GivenAnswer{
			QuestionID: question.ID,
			AnswerID:   answer.ID,
		})
	}

	if s.CurrentQuestion < len(s.Questions)-1 {
		s.CurrentQuestion++
		next := s.CurrentQuestionItem()
		return []*Reply{{Text: next.Text, Keyboard: AnswerKeyboard(next)}}
	}

	return m.finishTest(ctx, s)
}

func (m *Machine) finishTest(ctx context.Context, s *Session) []*Reply {
	s.EndedAt = m.now()

	candidateID, err := m.submitter.CreateCandidate(ctx, s.ChosenOpeningID, s.Credentials, &s.Resume)
	if err != nil {
		// Hard failure of the final step: surface it and keep the session
		// intact so the collected answers are not lost.
		m.logger.Error("creating candidate record",
			zap.String("session_id", s.ID),
			zap.String("opening_id", s.ChosenOpeningID),
			zap.Error(err),
		)
		return []*Reply{TextReply(MsgSubmissionError)}
	}

	s.CandidateID = candidateID

	if err := m.submitter.SubmitAnswers(ctx, s.ChosenOpeningID, s.CandidateID, s.ScreeningTestID,
		s.Answers, s.StartedAt, s.EndedAt); err != nil {
		// Best effort: the candidate record exists, losing the answer sheet
		// is logged but does not block a new cycle.
		m.logger.Warn("submitting answers",
			zap.String("session_id", s.ID),
			zap.String("candidate_id", s.CandidateID),
			zap.Error(err),
		)
	}

	m.logger.Info("screening cycle finished",
		zap.String("session_id", s.ID),
		zap.String("candidate_id", s.CandidateID),
		zap.Int("answers", len(s.Answers)),
		zap.Duration("took", s.EndedAt.Sub(s.StartedAt)),
	)

	s.ResetCycle()
	s.State = StateAwaitingResume

	return []*Reply{
		TextReply(MsgTestFinished),
		TextReply(MsgSendAnotherResume),
	}
}

// splitFileName splits an attachment name on the first dot. A missing
// extension defaults to plain text.
func splitFileName(full string) (name, ext string) {
	parts := strings.SplitN(full, ".", 2)
	name = parts[0]
	ext = defaultFileExtension
	if len(parts) > 1 && parts[1] != "" {
		ext = parts[1]
	}

	return name, ext
}
