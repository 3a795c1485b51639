package optimizer

import (
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
)

// CalculationOracle maps a configuration to build statistics. supplied by
// the caller, treated as opaque: deterministic for identical input, may
// fail recoverably for a single candidate.
type CalculationOracle interface {
	Evaluate(config *datastructure.Configuration) (*datastructure.Statistics, error)
}

// OracleFactory yields an independent oracle per evaluation worker, so the
// per-candidate evaluations of one iteration can run in parallel without
// sharing engine state.
type OracleFactory interface {
	NewOracle() CalculationOracle
}

// SingleOracleFactory adapts one oracle instance into a factory, for
// engines that are already safe for concurrent use.
type SingleOracleFactory struct {
	oracle CalculationOracle
}

func NewSingleOracleFactory(oracle CalculationOracle) *SingleOracleFactory {
	return &SingleOracleFactory{oracle: oracle}
}

func (f *SingleOracleFactory) NewOracle() CalculationOracle {
	return f.oracle
}

// ProgressFunc receives periodic search progress. the transport behind it
// (log line, channel, websocket frame) is owned entirely by the caller.
type ProgressFunc func(iteration int, bestScore float64, elapsedSecond float64)
