package runner

import (
	"assess_prep_backend/internal/model"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	items    []Item
	duration time.Duration
	err      error
}

func (s *stubSource) Load(ctx context.Context) ([]Item, time.Duration, error) {
	return s.items, s.duration, s.err
}

type recordingSubmitter struct {
	mu      sync.Mutex
	calls   int
	answers map[string]string
	reason  model.SubmitReason
}

func (s *recordingSubmitter) Submit(ctx context.Context, answers map[string]string, reason model.SubmitReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.answers = answers
	s.reason = reason
	return nil
}

func newTestRunner(duration time.Duration, ticks chan time.Time) (*Runner, *recordingSubmitter, *EventWatcher) {
	source := &stubSource{
		items:    []Item{{ID: "q1", Prompt: "first"}, {ID: "q2", Prompt: "second"}},
		duration: duration,
	}
	submitter := &recordingSubmitter{}
	watcher := NewEventWatcher()
	r := New(source, submitter, watcher)
	r.Ticks = ticks
	return r, submitter, watcher
}

func TestTimeoutSubmitsExactlyOnce(t *testing.T) {
	ticks := make(chan time.Time)
	r, submitter, _ := newTestRunner(3*time.Second, ticks)

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	r.SetAnswer("q1", "a")

	for i := 0; i < 3; i++ {
		ticks <- time.Time{}
	}

	outcome := <-done
	require.NoError(t, outcome.Err)
	assert.Equal(t, model.ReasonTimeout, outcome.Reason)
	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, map[string]string{"q1": "a"}, submitter.answers)
	assert.Equal(t, StateDone, r.State())
}

func TestUserFinishWinsBeforeTimeout(t *testing.T) {
	ticks := make(chan time.Time)
	r, submitter, _ := newTestRunner(time.Hour, ticks)

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	r.SetAnswer("q1", "b")
	r.Finish()

	outcome := <-done
	require.NoError(t, outcome.Err)
	assert.Equal(t, model.ReasonUserSubmit, outcome.Reason)
	assert.Equal(t, 1, submitter.calls)
}

func TestViolationAutosubmitsAndLaterEventsAreNoops(t *testing.T) {
	ticks := make(chan time.Time)
	r, submitter, watcher := newTestRunner(time.Hour, ticks)

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	watcher.Report("visibility")

	outcome := <-done
	assert.Equal(t, model.ReasonProctorViolation, outcome.Reason)
	assert.Equal(t, 1, submitter.calls)

	// The attempt is over; further violations and finishes change nothing.
	watcher.Report("blur")
	r.Finish()
	assert.Equal(t, 1, submitter.calls)
}

func TestAnswersFrozenOnceSubmitting(t *testing.T) {
	ticks := make(chan time.Time)
	r, submitter, _ := newTestRunner(time.Hour, ticks)

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	r.SetAnswer("q1", "a")
	r.Finish()
	<-done

	r.SetAnswer("q2", "b")
	assert.Equal(t, map[string]string{"q1": "a"}, submitter.answers)
}

func TestFallbackDurationApplies(t *testing.T) {
	ticks := make(chan time.Time)
	r, _, _ := newTestRunner(0, ticks)

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	assert.Equal(t, FallbackDuration, r.Remaining())

	r.Finish()
	<-done
}

func TestLoadErrorEndsRun(t *testing.T) {
	source := &stubSource{err: context.DeadlineExceeded}
	submitter := &recordingSubmitter{}
	r := New(source, submitter, nil)

	outcome := r.Run(context.Background())
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	assert.Equal(t, 0, submitter.calls, "nothing to submit when loading fails")
}

func TestLoaderMessagesRotate(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	source := &stubSource{items: []Item{{ID: "q1"}}, duration: time.Minute}
	submitter := &recordingSubmitter{}
	r := New(source, submitter, nil)
	r.Ticks = make(chan time.Time)
	r.OnStatus = func(u StatusUpdate) {
		if u.State == StateLoading && u.Message != "" {
			mu.Lock()
			seen = append(seen, u.Message)
			mu.Unlock()
		}
	}

	done := make(chan Outcome, 1)
	go func() { done <- r.Run(context.Background()) }()

	waitForState(t, r, StateRunning)
	r.Finish()
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, LoaderMessages[0], seen[0])
}

func waitForState(t *testing.T, r *Runner, want State) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if r.State() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %s, at %s", want, r.State())
		case <-time.After(time.Millisecond):
		}
	}
}
