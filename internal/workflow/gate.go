package workflow

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrRunInProgress is returned when a trigger arrives while a run holds the gate.
var ErrRunInProgress = errors.New("activation already in progress")

// RunGate is the exclusive gate guarding the single activation slot.
// Check-and-set is atomic with respect to concurrent triggers: two callers
// racing TryAcquire see exactly one winner. The gate is injectable so tests
// can assert exclusion behavior deterministically.
type RunGate struct {
	mu        sync.Mutex
	held      bool
	heldSince time.Time
	logger    *log.Logger
}

// NewRunGate creates a RunGate.
func NewRunGate(logger *log.Logger) *RunGate {
	if logger == nil {
		logger = log.Default()
	}
	return &RunGate{logger: logger}
}

// TryAcquire attempts to take the gate without blocking.
// Returns true if acquired, false if a run already holds it.
func (g *RunGate) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held {
		return false
	}
	g.held = true
	g.heldSince = time.Now()
	g.logger.Printf("Acquired activation gate")
	return true
}

// Release frees the gate. Releasing an unheld gate is a no-op.
func (g *RunGate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.held {
		return
	}
	g.held = false
	g.logger.Printf("Released activation gate after %s", time.Since(g.heldSince).Round(time.Millisecond))
}

// IsHeld reports whether a run currently holds the gate.
func (g *RunGate) IsHeld() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held
}

// HeldInfo returns whether the gate is held and for how long.
func (g *RunGate) HeldInfo() (held bool, since time.Time, duration time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.held {
		return false, time.Time{}, 0
	}
	return true, g.heldSince, time.Since(g.heldSince)
}
