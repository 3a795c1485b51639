package evaluator

import (
	"fmt"
	"math"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
)

// Objective is the closed set of fitness targets. the set is small and
// fixed, dispatch is a switch, not a plugin registry.
type Objective uint8

const (
	DPS Objective = iota
	EHP
	BALANCED
)

func (o Objective) String() string {
	switch o {
	case DPS:
		return "dps"
	case EHP:
		return "ehp"
	case BALANCED:
		return "balanced"
	}
	return "unknown"
}

func ParseObjective(s string) (Objective, error) {
	switch s {
	case "dps":
		return DPS, nil
	case "ehp":
		return EHP, nil
	case "balanced":
		return BALANCED, nil
	}
	return 0, fmt.Errorf("unknown objective %q", s)
}

// Evaluator folds engine statistics into one comparable fitness scalar for
// a fixed objective. higher is always better.
type Evaluator struct {
	objective Objective
}

func NewEvaluator(objective Objective) *Evaluator {
	return &Evaluator{objective: objective}
}

func (e *Evaluator) GetObjective() Objective {
	return e.objective
}

// Score compares candidate statistics against the run baseline. for the
// balanced objective the two sub-metrics are blended as relative percentage
// change so neither dominates on raw numeric scale alone.
func (e *Evaluator) Score(baseline, candidate *datastructure.Statistics) float64 {
	switch e.objective {
	case DPS:
		return candidate.TotalDPS
	case EHP:
		return candidate.EHP
	case BALANCED:
		return pkg.BALANCED_DPS_WEIGHT*pctChange(baseline.TotalDPS, candidate.TotalDPS) +
			pkg.BALANCED_EHP_WEIGHT*pctChange(baseline.EHP, candidate.EHP)
	}
	return pkg.NEG_INF_SCORE
}

// WorstScore is the sentinel given to candidates whose oracle call failed,
// so they are never selected but never abort the run.
func (e *Evaluator) WorstScore() float64 {
	return math.Inf(-1)
}

// pctChange is (c-b)/b*100. a zero baseline falls back to the absolute
// delta so the blend stays finite.
func pctChange(b, c float64) float64 {
	if b == 0 {
		return c - b
	}
	return (c - b) / b * 100.0
}
