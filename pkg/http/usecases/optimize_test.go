package usecases

import (
	"context"
	"testing"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/calculator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type calcFactory struct {
	factory *calculator.Factory
}

func (f calcFactory) NewOracle() optimizer.CalculationOracle {
	return f.factory.NewOracle()
}

func buildUsecase(t *testing.T) *OptimizeUsecase {
	t.Helper()

	start := datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{2, 3})
	dmg := datastructure.NewNode(2, pkg.NOTABLE, "damage", nil)
	dmg.SetStats(map[string]float64{calculator.StatIncreasedDamage: 20})
	life := datastructure.NewNode(3, pkg.SMALL, "life", nil)
	life.SetStats(map[string]float64{calculator.StatFlatLife: 40})
	graph := datastructure.NewTreeGraph([]*datastructure.Node{start, dmg, life})

	return NewOptimizeUsecase(zap.NewNop(), graph, calcFactory{factory: calculator.NewFactory(graph)})
}

func TestOptimizeUsecaseRunsToConvergence(t *testing.T) {
	u := buildUsecase(t)

	res, err := u.Optimize(context.Background(), OptimizeParams{
		Level:         10,
		ClassStart:    1,
		Objective:     "dps",
		MaxIterations: 50,
		Patience:      2,
		DerivePoints:  true,
	}, nil)
	require.NoError(t, err)

	// only node 2 moves the dps needle, node 3 is pure life
	assert.Contains(t, res.NodesAdded(), datastructure.Index(2))
	assert.Greater(t, res.Improvement(), 0.0)
}

func TestOptimizeUsecaseRejectsBadObjective(t *testing.T) {
	u := buildUsecase(t)

	_, err := u.Optimize(context.Background(), OptimizeParams{
		Level:      10,
		ClassStart: 1,
		Objective:  "pareto",
	}, nil)
	assert.Error(t, err)
}

func TestOptimizeUsecaseRejectsBadLevel(t *testing.T) {
	u := buildUsecase(t)

	_, err := u.Optimize(context.Background(), OptimizeParams{
		Level:      0,
		ClassStart: 1,
	}, nil)
	assert.Error(t, err)
}

func TestTreeSize(t *testing.T) {
	u := buildUsecase(t)
	assert.Equal(t, 3, u.TreeSize())
}
