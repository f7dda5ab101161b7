// Package runner drives a timed assessment attempt from the client side:
// load items, count down, collect answers, submit exactly once. The quiz
// and coding flows differ only in the capabilities plugged into it.
package runner

import (
	"assess_prep_backend/internal/model"
	"context"
	"sync"
	"time"
)

// FallbackDuration applies when the item source reports no duration.
const FallbackDuration = 20 * time.Minute

// LoaderMessages rotate on status updates while the item set is prepared.
var LoaderMessages = []string{
	"Be ready to face the challenge",
	"One step closer towards improvement",
	"Preparing your personalized questions",
	"Sharpening the pencils...",
	"Almost there",
}

type State int

const (
	StateLoading State = iota
	StateRunning
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Item is one displayable assessment item, already sanitized by the server.
type Item struct {
	ID     string
	Prompt string
}

// ItemSource loads the item set and the session duration. A zero duration
// means the source does not know it and the fallback applies.
type ItemSource interface {
	Load(ctx context.Context) ([]Item, time.Duration, error)
}

// Submitter delivers the collected answers. The runner calls it at most once.
type Submitter interface {
	Submit(ctx context.Context, answers map[string]string, reason model.SubmitReason) error
}

// ProctorWatcher emits focus-loss style violations. The runner stops
// draining the channel once a submit is underway.
type ProctorWatcher interface {
	Violations() <-chan string
	Close() error
}

// StatusUpdate is pushed to the OnStatus callback on every visible change.
type StatusUpdate struct {
	State     State
	Message   string
	Remaining time.Duration
}

// Outcome reports how the attempt ended.
type Outcome struct {
	Reason model.SubmitReason
	Err    error
}

type Runner struct {
	Source    ItemSource
	Submitter Submitter
	Watcher   ProctorWatcher

	// Ticks drives the countdown, one tick per second. Nil means a real
	// ticker; tests inject their own channel.
	Ticks <-chan time.Time

	// OnStatus receives state transitions and countdown updates. Optional.
	OnStatus func(StatusUpdate)

	mu        sync.Mutex
	state     State
	items     []Item
	answers   map[string]string
	remaining time.Duration
	finishCh  chan model.SubmitReason
}

func New(source ItemSource, submitter Submitter, watcher ProctorWatcher) *Runner {
	return &Runner{
		Source:    source,
		Submitter: submitter,
		Watcher:   watcher,
		answers:   map[string]string{},
		finishCh:  make(chan model.SubmitReason, 1),
	}
}

// Items returns the loaded item set. Empty until loading completes.
func (r *Runner) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) Remaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// SetAnswer records an answer. Ignored once a submit is underway, so a
// keystroke racing the timeout cannot mutate a submitted answer set.
func (r *Runner) SetAnswer(itemID, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return
	}
	r.answers[itemID] = value
}

// Finish requests a user submit. Safe to call any number of times; only
// the first request that reaches the loop wins.
func (r *Runner) Finish() {
	select {
	case r.finishCh <- model.ReasonUserSubmit:
	default:
	}
}

func (r *Runner) setState(state State, msg string) {
	r.mu.Lock()
	r.state = state
	remaining := r.remaining
	r.mu.Unlock()
	r.notify(StatusUpdate{State: state, Message: msg, Remaining: remaining})
}

func (r *Runner) notify(u StatusUpdate) {
	if r.OnStatus != nil {
		r.OnStatus(u)
	}
}

// Run executes the whole attempt and blocks until it is submitted or the
// context is canceled. Exactly one submit happens per run: the timeout, a
// proctor violation and a user finish all funnel into the same guard.
func (r *Runner) Run(ctx context.Context) Outcome {
	r.setState(StateLoading, LoaderMessages[0])

	type loaded struct {
		items    []Item
		duration time.Duration
		err      error
	}
	loadCh := make(chan loaded, 1)
	go func() {
		items, duration, err := r.Source.Load(ctx)
		loadCh <- loaded{items, duration, err}
	}()

	rotate := time.NewTicker(1800 * time.Millisecond)
	defer rotate.Stop()
	msgIndex := 0

	var l loaded
loading:
	for {
		select {
		case l = <-loadCh:
			break loading
		case <-rotate.C:
			msgIndex = (msgIndex + 1) % len(LoaderMessages)
			r.notify(StatusUpdate{State: StateLoading, Message: LoaderMessages[msgIndex]})
		case <-ctx.Done():
			return Outcome{Err: ctx.Err()}
		}
	}
	if l.err != nil {
		return Outcome{Err: l.err}
	}

	duration := l.duration
	if duration <= 0 {
		duration = FallbackDuration
	}

	r.mu.Lock()
	r.items = l.items
	r.remaining = duration
	r.mu.Unlock()
	r.setState(StateRunning, "")

	ticks := r.Ticks
	if ticks == nil {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		ticks = ticker.C
	}

	var violations <-chan string
	if r.Watcher != nil {
		violations = r.Watcher.Violations()
	}

	for {
		select {
		case <-ticks:
			r.mu.Lock()
			r.remaining -= time.Second
			remaining := r.remaining
			r.mu.Unlock()
			if remaining <= 0 {
				return r.submit(ctx, model.ReasonTimeout)
			}
			r.notify(StatusUpdate{State: StateRunning, Remaining: remaining})
		case <-violations:
			return r.submit(ctx, model.ReasonProctorViolation)
		case reason := <-r.finishCh:
			return r.submit(ctx, reason)
		case <-ctx.Done():
			return Outcome{Err: ctx.Err()}
		}
	}
}

// submit detaches the watcher, freezes the answer set and delivers it.
// Reaching here is only possible once per run since Run returns after it.
func (r *Runner) submit(ctx context.Context, reason model.SubmitReason) Outcome {
	r.setState(StateSubmitting, "")
	if r.Watcher != nil {
		r.Watcher.Close()
	}

	r.mu.Lock()
	answers := make(map[string]string, len(r.answers))
	for k, v := range r.answers {
		answers[k] = v
	}
	r.mu.Unlock()

	err := r.Submitter.Submit(ctx, answers, reason)
	r.setState(StateDone, "")
	return Outcome{Reason: reason, Err: err}
}
