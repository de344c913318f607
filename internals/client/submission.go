package client

import "sync/atomic"

type SubmissionState int

const (
	Idle SubmissionState = iota
	Submitting
)

func (s SubmissionState) String() string {
	if s == Submitting {
		return "Submitting"
	}
	return "Idle"
}

// formGuard makes one logical form non-reentrant: Idle → Submitting →
// Idle, with a second enter refused while Submitting.
type formGuard struct {
	busy atomic.Bool
}

func (g *formGuard) enter() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *formGuard) leave() {
	g.busy.Store(false)
}

func (g *formGuard) state() SubmissionState {
	if g.busy.Load() {
		return Submitting
	}
	return Idle
}

func busyFailure() *Failure {
	return localFailure(SubmissionFailure, ErrSubmissionInProgress, msgSubmissionPending, nil)
}
