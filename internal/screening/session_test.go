package screening

import (
	"errors"
	"sync"
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func TestAdvance(t *testing.T) {
	if got := Advance(2, 5); got != model.SessionInProgress {
		t.Errorf("Advance(2, 5) = %v, want in_progress", got)
	}
	if got := Advance(5, 5); got != model.SessionFinalizing {
		t.Errorf("Advance(5, 5) = %v, want finalizing", got)
	}
}

func TestCanSubmit(t *testing.T) {
	if err := CanSubmit(model.SessionInProgress); err != nil {
		t.Errorf("in_progress: unexpected error %v", err)
	}
	for _, state := range []model.SessionState{model.SessionFinalizing, model.SessionCompleted, model.SessionError} {
		if err := CanSubmit(state); !errors.Is(err, ErrAlreadyCompleted) {
			t.Errorf("%s: err = %v, want ErrAlreadyCompleted", state, err)
		}
	}
}

func TestCanFinalize(t *testing.T) {
	if err := CanFinalize(model.SessionFinalizing); err != nil {
		t.Errorf("finalizing: unexpected error %v", err)
	}
	// idempotent retry on a completed session
	if err := CanFinalize(model.SessionCompleted); err != nil {
		t.Errorf("completed: unexpected error %v", err)
	}
	if err := CanFinalize(model.SessionInProgress); !errors.Is(err, ErrNotFinalizing) {
		t.Errorf("in_progress: err = %v, want ErrNotFinalizing", err)
	}
	if err := CanFinalize(model.SessionError); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("error: err = %v, want ErrAlreadyCompleted", err)
	}
}

func TestAlreadyAnswered(t *testing.T) {
	answers := []model.ScreeningAnswer{
		{QuestionID: 1, Score: 70},
		{QuestionID: 2, Score: 85},
	}
	if !AlreadyAnswered(answers, 2) {
		t.Error("AlreadyAnswered(answers, 2) = false, want true")
	}
	if AlreadyAnswered(answers, 3) {
		t.Error("AlreadyAnswered(answers, 3) = true, want false")
	}
	if AlreadyAnswered(nil, 1) {
		t.Error("AlreadyAnswered(nil, 1) = true, want false")
	}
}

func TestOverallScore(t *testing.T) {
	answers := []model.ScreeningAnswer{
		{Score: 80},
		{Score: 65.5},
		{Score: 100},
	}
	if got := OverallScore(answers); got != 81.83 {
		t.Errorf("OverallScore = %v, want 81.83", got)
	}
	if got := OverallScore(nil); got != 0 {
		t.Errorf("OverallScore(nil) = %v, want 0", got)
	}
}

func TestGuardSerializes(t *testing.T) {
	g := NewGuard()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(7, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestGuardIndependentSessions(t *testing.T) {
	g := NewGuard()
	release := make(chan struct{})
	held := make(chan struct{})

	go func() {
		_ = g.Do(1, func() error {
			close(held)
			<-release
			return nil
		})
	}()

	<-held
	// a different interview id must not block behind session 1
	done := make(chan struct{})
	go func() {
		_ = g.Do(2, func() error { return nil })
		close(done)
	}()
	<-done
	close(release)
}
