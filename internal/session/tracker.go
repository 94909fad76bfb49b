package session

import (
	"errors"
	"sync"
)

// ErrRequestInFlight is returned when a generation request is submitted
// while another one has not finished yet.
var ErrRequestInFlight = errors.New("question generation already in progress")

// Tracker admits at most one generation request at a time. A rejected
// request has no side effects on the deck or the in-flight request.
type Tracker struct {
	mu   sync.Mutex
	busy bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (tracker *Tracker) Begin() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.busy {
		return ErrRequestInFlight
	}
	tracker.busy = true
	return nil
}

func (tracker *Tracker) End() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.busy = false
}

func (tracker *Tracker) InFlight() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.busy
}
