package optimizer

import (
	"time"
)

type ConvergenceReason uint8

const (
	NOT_CONVERGED ConvergenceReason = iota
	NO_VALID_NEIGHBORS
	NO_IMPROVEMENT
	MAX_ITERATIONS
	MAX_TIME
)

func (r ConvergenceReason) String() string {
	switch r {
	case NO_VALID_NEIGHBORS:
		return "NoValidNeighbors"
	case NO_IMPROVEMENT:
		return "NoImprovement"
	case MAX_ITERATIONS:
		return "MaxIterations"
	case MAX_TIME:
		return "MaxTime"
	}
	return "NotConverged"
}

// ConvergenceDetector decides at the end of every iteration whether the
// search stops and why. conditions are checked in a fixed order and the
// first match wins, so the recorded reason is stable for tests.
type ConvergenceDetector struct {
	startedAt     time.Time
	patience      int
	maxIterations int
	maxTime       time.Duration
}

func NewConvergenceDetector(patience, maxIterations int, maxTime time.Duration) *ConvergenceDetector {
	return &ConvergenceDetector{
		patience:      patience,
		maxIterations: maxIterations,
		maxTime:       maxTime,
		startedAt:     time.Now(),
	}
}

func (d *ConvergenceDetector) Elapsed() time.Duration {
	return time.Since(d.startedAt)
}

// Check evaluates the termination conditions for the iteration that just
// finished. plateau is the count of consecutive iterations without strict
// improvement.
func (d *ConvergenceDetector) Check(iteration int, noValidNeighbors bool, plateau int) (ConvergenceReason, bool) {
	if noValidNeighbors {
		return NO_VALID_NEIGHBORS, true
	}
	if plateau >= d.patience {
		return NO_IMPROVEMENT, true
	}
	if iteration >= d.maxIterations {
		return MAX_ITERATIONS, true
	}
	if d.Elapsed() >= d.maxTime {
		return MAX_TIME, true
	}
	return NOT_CONVERGED, false
}
