package optimizer

import (
	"time"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
)

// Result is the full outcome of one optimization run. a run that converges
// with zero improvement is still a successful result.
type Result struct {
	finalConfig   *datastructure.Configuration
	baselineStats *datastructure.Statistics
	finalStats    *datastructure.Statistics
	nodesAdded    []datastructure.Index
	nodesRemoved  []datastructure.Index
	baselineScore float64
	finalScore    float64
	iterations    int
	elapsed       time.Duration
	reason        ConvergenceReason
}

func (r *Result) GetFinalConfiguration() *datastructure.Configuration {
	return r.finalConfig
}

func (r *Result) GetBaselineStatistics() *datastructure.Statistics {
	return r.baselineStats
}

func (r *Result) GetFinalStatistics() *datastructure.Statistics {
	return r.finalStats
}

// NodesAdded / NodesRemoved are the structural diff of the final
// configuration against the original input, ascending node id.
func (r *Result) NodesAdded() []datastructure.Index {
	return r.nodesAdded
}

func (r *Result) NodesRemoved() []datastructure.Index {
	return r.nodesRemoved
}

func (r *Result) GetBaselineScore() float64 {
	return r.baselineScore
}

func (r *Result) GetFinalScore() float64 {
	return r.finalScore
}

// Improvement is final minus baseline score. zero is a valid outcome.
func (r *Result) Improvement() float64 {
	return r.finalScore - r.baselineScore
}

func (r *Result) IterationsRun() int {
	return r.iterations
}

func (r *Result) ElapsedTime() time.Duration {
	return r.elapsed
}

func (r *Result) GetConvergenceReason() ConvergenceReason {
	return r.reason
}
