package screening

import (
	"errors"
	"sync"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
)

var (
	// ErrSessionConflict means the candidate already has an active session
	// for the job.
	ErrSessionConflict = errors.New("an active screening session already exists")
	// ErrAlreadyCompleted means the session reached a terminal state and
	// accepts no more answers.
	ErrAlreadyCompleted = errors.New("screening session already completed")
	// ErrNotFinalizing means finalize was called before all questions were
	// answered.
	ErrNotFinalizing = errors.New("screening session still has unanswered questions")
	// ErrDuplicateAnswer means the question was already answered in this
	// session.
	ErrDuplicateAnswer = errors.New("question already answered in this session")
)

// Guard serializes submit and finalize calls per interview so concurrent
// requests against one session cannot interleave state transitions. Redis
// holds the cross-process active-session reservation; this covers the
// in-process races.
type Guard struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewGuard() *Guard {
	return &Guard{locks: make(map[int64]*sync.Mutex)}
}

// Do runs fn while holding the interview's lock.
func (g *Guard) Do(interviewID int64, fn func() error) error {
	g.mu.Lock()
	l, ok := g.locks[interviewID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[interviewID] = l
	}
	g.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}

// Forget drops the interview's lock entry once the session is terminal.
func (g *Guard) Forget(interviewID int64) {
	g.mu.Lock()
	delete(g.locks, interviewID)
	g.mu.Unlock()
}

// Advance returns the session state after recording one more answer.
// Answering the last question moves the session to finalizing.
func Advance(answered, total int) model.SessionState {
	if answered >= total {
		return model.SessionFinalizing
	}
	return model.SessionInProgress
}

// AlreadyAnswered reports whether the question already has an answer in this
// session. Each question is answered at most once, so progress counts rows,
// not retries.
func AlreadyAnswered(answers []model.ScreeningAnswer, questionID int64) bool {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// CanSubmit reports whether a session in the given state accepts answers.
func CanSubmit(state model.SessionState) error {
	switch state {
	case model.SessionInProgress:
		return nil
	case model.SessionCompleted, model.SessionError, model.SessionFinalizing:
		return ErrAlreadyCompleted
	}
	return ErrAlreadyCompleted
}

// CanFinalize reports whether a session in the given state may be finalized.
// Finalizing a completed session is allowed so retries stay idempotent.
func CanFinalize(state model.SessionState) error {
	switch state {
	case model.SessionFinalizing, model.SessionCompleted:
		return nil
	case model.SessionInProgress:
		return ErrNotFinalizing
	}
	return ErrAlreadyCompleted
}

// OverallScore is the arithmetic mean of the answer scores, rounded to two
// decimals. A session with no answers scores 0.
func OverallScore(answers []model.ScreeningAnswer) float64 {
	if len(answers) == 0 {
		return 0
	}
	var total float64
	for _, a := range answers {
		total += a.Score
	}
	return pkg.Round2(total / float64(len(answers)))
}
