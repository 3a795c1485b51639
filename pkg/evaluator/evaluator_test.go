package evaluator

import (
	"math"
	"testing"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDpsObjective(t *testing.T) {
	e := NewEvaluator(DPS)
	baseline := &datastructure.Statistics{TotalDPS: 1000, EHP: 2000}
	candidate := &datastructure.Statistics{TotalDPS: 1250, EHP: 500}

	assert.Equal(t, 1250.0, e.Score(baseline, candidate))
}

func TestScoreEhpObjective(t *testing.T) {
	e := NewEvaluator(EHP)
	baseline := &datastructure.Statistics{TotalDPS: 1000, EHP: 2000}
	candidate := &datastructure.Statistics{TotalDPS: 10, EHP: 2400}

	assert.Equal(t, 2400.0, e.Score(baseline, candidate))
}

func TestScoreBalancedObjective(t *testing.T) {
	// +10% dps, -5% ehp: 0.6*10 + 0.4*(-5) = 4.0
	e := NewEvaluator(BALANCED)
	baseline := &datastructure.Statistics{TotalDPS: 1000, EHP: 2000}
	candidate := &datastructure.Statistics{TotalDPS: 1100, EHP: 1900}

	assert.InDelta(t, 4.0, e.Score(baseline, candidate), 1e-9)
	assert.InDelta(t, 0.0, e.Score(baseline, baseline), 1e-9, "baseline scores zero against itself")
}

func TestScoreBalancedZeroBaselineGuard(t *testing.T) {
	// zero baseline dps falls back to the absolute delta instead of dividing
	e := NewEvaluator(BALANCED)
	baseline := &datastructure.Statistics{TotalDPS: 0, EHP: 2000}
	candidate := &datastructure.Statistics{TotalDPS: 50, EHP: 2000}

	got := e.Score(baseline, candidate)
	assert.False(t, math.IsInf(got, 0))
	assert.InDelta(t, 0.6*50, got, 1e-9)
}

func TestWorstScoreNeverSelected(t *testing.T) {
	e := NewEvaluator(DPS)
	assert.True(t, math.IsInf(e.WorstScore(), -1))
}

func TestParseObjective(t *testing.T) {
	for _, s := range []string{"dps", "ehp", "balanced"} {
		o, err := ParseObjective(s)
		require.NoError(t, err)
		assert.Equal(t, s, o.String())
	}

	_, err := ParseObjective("pareto")
	assert.Error(t, err)
}
