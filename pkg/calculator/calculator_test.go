package calculator

import (
	"testing"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStatsGraph(t *testing.T) *datastructure.TreeGraph {
	t.Helper()

	start := datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{2, 3})
	dmg := datastructure.NewNode(2, pkg.NOTABLE, "damage", nil)
	dmg.SetStats(map[string]float64{
		StatIncreasedDamage:      20,
		StatIncreasedAttackSpeed: 10,
	})
	life := datastructure.NewNode(3, pkg.SMALL, "life", nil)
	life.SetStats(map[string]float64{
		StatFlatLife:      40,
		StatIncreasedLife: 10,
	})
	return datastructure.NewTreeGraph([]*datastructure.Node{start, dmg, life})
}

func TestEvaluateAggregatesNodeStats(t *testing.T) {
	g := buildStatsGraph(t)
	c := NewCalculator(g)

	cfg, err := datastructure.NewConfiguration(10, 1, []datastructure.Index{2, 3})
	require.NoError(t, err)

	stats, err := c.Evaluate(cfg)
	require.NoError(t, err)

	// 100 * 1.2 * 1.1
	assert.InDelta(t, 132.0, stats.TotalDPS, 1e-9)
	// (40 + 12*10 + 40) * 1.1
	assert.InDelta(t, 220.0, stats.Life, 1e-9)
	// no armour, ehp equals the hit pool
	assert.InDelta(t, stats.Life, stats.EHP, 1e-9)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := buildStatsGraph(t)
	f := NewFactory(g)

	cfg, err := datastructure.NewConfiguration(10, 1, []datastructure.Index{2})
	require.NoError(t, err)

	a, err := f.NewOracle().Evaluate(cfg)
	require.NoError(t, err)
	b, err := f.NewOracle().Evaluate(cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateFailsOnUnknownNode(t *testing.T) {
	g := buildStatsGraph(t)
	c := NewCalculator(g)

	cfg, err := datastructure.NewConfiguration(10, 1, []datastructure.Index{99})
	require.NoError(t, err)

	_, err = c.Evaluate(cfg)
	assert.Error(t, err)
}
