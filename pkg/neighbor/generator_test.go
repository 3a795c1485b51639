package neighbor

import (
	"math/rand"
	"testing"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/budget"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line graph 1-2-3-4-5, class start 1
func buildLineGraph(t *testing.T) *datastructure.TreeGraph {
	t.Helper()
	nodes := []*datastructure.Node{
		datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{2}),
		datastructure.NewNode(2, pkg.SMALL, "small a", []datastructure.Index{3}),
		datastructure.NewNode(3, pkg.SMALL, "small b", []datastructure.Index{4}),
		datastructure.NewNode(4, pkg.SMALL, "small c", []datastructure.Index{5}),
		datastructure.NewNode(5, pkg.SMALL, "small d", nil),
	}
	return datastructure.NewTreeGraph(nodes)
}

func newConfig(t *testing.T, level int, classStart datastructure.Index, allocated ...datastructure.Index) *datastructure.Configuration {
	t.Helper()
	cfg, err := datastructure.NewConfiguration(level, classStart, allocated)
	require.NoError(t, err)
	return cfg
}

func newBudget(t *testing.T, unallocated, respec int) budget.State {
	t.Helper()
	b, err := budget.NewState(unallocated, respec)
	require.NoError(t, err)
	return b
}

func TestGenerateSingleFrontierAdd(t *testing.T) {
	// allocated={1} with 4 spendable points: the only frontier node is 2
	g := buildLineGraph(t)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

	muts := gen.Generate(newConfig(t, 10, 1), newBudget(t, 4, 0))

	require.Len(t, muts, 1)
	assert.Equal(t, datastructure.ADD_MUTATION, muts[0].GetKind())
	assert.Equal(t, []datastructure.Index{2}, muts[0].GetAdded())

	next := newConfig(t, 10, 1).Apply(muts[0])
	assert.Equal(t, []datastructure.Index{1, 2}, next.AllocatedIDs())
}

func TestGenerateExcludesLoadBearingNodeFromSwaps(t *testing.T) {
	// allocated={1,2,3}, no points, unlimited respec. removing node 2 would
	// sever node 3, so no swap may remove it, and node 3's only replacement
	// (node 4) is its own neighbor.
	g := buildLineGraph(t)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

	muts := gen.Generate(newConfig(t, 10, 1, 2, 3), newBudget(t, 0, budget.UnlimitedRespec))

	for _, m := range muts {
		require.Equal(t, datastructure.SWAP_MUTATION, m.GetKind())
		assert.NotContains(t, m.GetRemoved(), datastructure.Index(2),
			"removing node 2 disconnects node 3")
	}
	// the only removable node is the tip, whose sole replacement is itself
	assert.Empty(t, muts)
}

func TestGenerateEmptyOnSaturatedMinimalTree(t *testing.T) {
	// every node of a line is load bearing except the tip, and with zero
	// budgets neither adds nor swaps are fundable: a legitimate terminal
	// state, not an error.
	g := buildLineGraph(t)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

	muts := gen.Generate(newConfig(t, 10, 1, 2, 3, 4, 5), newBudget(t, 0, 0))
	assert.Empty(t, muts)
}

func TestGenerateOrderingByValueScore(t *testing.T) {
	// star around the start: notable > keystone > small > travel,
	// node id ascending within equal value
	nodes := []*datastructure.Node{
		datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{10, 11, 12, 13, 14}),
		datastructure.NewNode(10, pkg.TRAVEL, "travel", nil),
		datastructure.NewNode(11, pkg.KEYSTONE, "keystone", nil),
		datastructure.NewNode(12, pkg.SMALL, "small", nil),
		datastructure.NewNode(13, pkg.NOTABLE, "notable", nil),
		datastructure.NewNode(14, pkg.SMALL, "small 2", nil),
	}
	g := datastructure.NewTreeGraph(nodes)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

	muts := gen.Generate(newConfig(t, 10, 1), newBudget(t, 10, 0))

	var order []datastructure.Index
	for _, m := range muts {
		order = append(order, m.GetAdded()[0])
	}
	assert.Equal(t, []datastructure.Index{13, 11, 12, 14, 10}, order)
}

func TestGenerateTruncatesToMaxCandidates(t *testing.T) {
	nodes := []*datastructure.Node{
		datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{10, 11, 12, 13}),
		datastructure.NewNode(10, pkg.SMALL, "a", nil),
		datastructure.NewNode(11, pkg.SMALL, "b", nil),
		datastructure.NewNode(12, pkg.SMALL, "c", nil),
		datastructure.NewNode(13, pkg.SMALL, "d", nil),
	}
	g := datastructure.NewTreeGraph(nodes)
	gen := NewGenerator(g, 2)

	muts := gen.Generate(newConfig(t, 10, 1), newBudget(t, 10, 0))
	assert.Len(t, muts, 2)
}

func TestGenerateAddsBeforeSwapsWhenConfigured(t *testing.T) {
	nodes := []*datastructure.Node{
		datastructure.NewNode(1, pkg.CLASS_START, "start", []datastructure.Index{10, 11}),
		datastructure.NewNode(10, pkg.SMALL, "a", nil),
		datastructure.NewNode(11, pkg.NOTABLE, "b", nil),
	}
	g := datastructure.NewTreeGraph(nodes)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES, WithAddsFirst())

	muts := gen.Generate(newConfig(t, 10, 1, 10), newBudget(t, 1, budget.UnlimitedRespec))
	require.NotEmpty(t, muts)

	sawSwap := false
	for _, m := range muts {
		if m.GetKind() == datastructure.SWAP_MUTATION {
			sawSwap = true
		} else {
			assert.False(t, sawSwap, "an add listed after a swap")
		}
	}
	assert.True(t, sawSwap)
}

func TestGenerateRespectsBudgets(t *testing.T) {
	g := buildLineGraph(t)
	gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

	// no unallocated points: no adds
	muts := gen.Generate(newConfig(t, 10, 1, 2), newBudget(t, 0, 0))
	assert.Empty(t, muts)

	// one respec point funds swaps but not adds
	muts = gen.Generate(newConfig(t, 10, 1, 2), newBudget(t, 0, 1))
	for _, m := range muts {
		assert.Equal(t, datastructure.SWAP_MUTATION, m.GetKind())
	}
}

// randomized property: every generated mutation applied to its
// configuration yields a connected allocated set within budget.
func TestGeneratedMutationsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		g, classStart, allocated := randomTree(rng)
		cfg, err := datastructure.NewConfiguration(20, classStart, allocated)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate(g), "fixture must start connected")

		b := newBudget(t, rng.Intn(4), rng.Intn(4))
		gen := NewGenerator(g, pkg.DEFAULT_MAX_CANDIDATES)

		for _, m := range gen.Generate(cfg, b) {
			require.True(t, b.CanAllocate(m), "mutation %s overruns unallocated pool", m)
			require.True(t, b.CanRespec(m), "mutation %s overruns respec pool", m)

			next := cfg.Apply(m)
			require.NoError(t, next.Validate(g), "mutation %s severed the tree", m)
		}
	}
}

// randomTree builds a small random connected graph plus a random connected
// allocated subset containing the class start.
func randomTree(rng *rand.Rand) (*datastructure.TreeGraph, datastructure.Index, []datastructure.Index) {
	n := 4 + rng.Intn(8)
	kinds := []pkg.NodeKind{pkg.TRAVEL, pkg.SMALL, pkg.NOTABLE, pkg.KEYSTONE}

	adj := make([][]datastructure.Index, n)
	// random spanning tree keeps the graph connected
	for i := 1; i < n; i++ {
		parent := rng.Intn(i)
		adj[parent] = append(adj[parent], datastructure.Index(i+1))
	}
	// sprinkle extra edges so cycles and multiple removable nodes appear
	for e := 0; e < n/2; e++ {
		a, b := rng.Intn(n), rng.Intn(n)
		if a != b {
			adj[a] = append(adj[a], datastructure.Index(b+1))
		}
	}

	nodes := make([]*datastructure.Node, n)
	for i := 0; i < n; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		if i == 0 {
			kind = pkg.CLASS_START
		}
		nodes[i] = datastructure.NewNode(datastructure.Index(i+1), kind, "", adj[i])
	}
	g := datastructure.NewTreeGraph(nodes)

	// grow a random allocated subset from the class start along the frontier
	allocated := datastructure.NewNodeSet(1)
	grow := rng.Intn(n)
	for i := 0; i < grow; i++ {
		frontier := g.Frontier(allocated)
		if len(frontier) == 0 {
			break
		}
		allocated.Add(frontier[rng.Intn(len(frontier))])
	}
	return g, 1, allocated.SortedIDs()
}
