package runner

import "sync"

// EventWatcher is a ProctorWatcher fed by explicit Report calls. The
// console client reports on user input; tests report directly.
type EventWatcher struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

func NewEventWatcher() *EventWatcher {
	return &EventWatcher{ch: make(chan string, 4)}
}

func (w *EventWatcher) Violations() <-chan string {
	return w.ch
}

// Report queues a violation event. Events reported after Close, or after
// the runner stopped draining, are dropped.
func (w *EventWatcher) Report(kind string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.ch <- kind:
	default:
	}
}

func (w *EventWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}
