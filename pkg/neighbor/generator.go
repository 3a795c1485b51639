// Package neighbor produces the one-step mutations of a configuration that
// the optimizer scores each iteration. every mutation it emits is valid by
// construction: the resulting allocated set stays connected to the class
// start, and both point pools can fund it.
package neighbor

import (
	"sort"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/budget"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
)

type Generator struct {
	graph         *datastructure.TreeGraph
	maxCandidates int
	addsFirst     bool
}

type Option func(*Generator)

// WithAddsFirst lists every Add mutation before any Swap, regardless of
// value score.
func WithAddsFirst() Option {
	return func(g *Generator) {
		g.addsFirst = true
	}
}

func NewGenerator(graph *datastructure.TreeGraph, maxCandidates int, opts ...Option) *Generator {
	g := &Generator{
		graph:         graph,
		maxCandidates: maxCandidates,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the valid one-step mutations of config, ordered by value
// score descending then node id ascending, truncated to maxCandidates. an
// empty slice is a legitimate terminal answer (saturated minimal tree with
// no budget), not an error.
func (g *Generator) Generate(config *datastructure.Configuration, b budget.State) []*datastructure.Mutation {
	adds := g.generateAdds(config, b)
	swaps := g.generateSwaps(config, b)

	var candidates []*datastructure.Mutation
	if g.addsFirst {
		g.sortByValue(adds)
		g.sortByValue(swaps)
		candidates = append(adds, swaps...)
	} else {
		candidates = append(adds, swaps...)
		g.sortByValue(candidates)
	}

	if g.maxCandidates > 0 && len(candidates) > g.maxCandidates {
		candidates = candidates[:g.maxCandidates]
	}
	return candidates
}

// generateAdds proposes one Add per frontier node while the unallocated
// pool has room. connectivity holds by construction, the new node attaches
// to an allocated neighbor.
func (g *Generator) generateAdds(config *datastructure.Configuration, b budget.State) []*datastructure.Mutation {
	var adds []*datastructure.Mutation
	for _, id := range g.graph.Frontier(config.Allocated()) {
		m := datastructure.NewAddMutation(id)
		if b.CanAllocate(m) {
			adds = append(adds, m)
		}
	}
	return adds
}

// generateSwaps proposes removing each removable node R and attaching each
// frontier node of the remaining set, funded by the respec pool. the
// replacement must be adjacent to the remaining tree: teleport swaps are
// not generated.
func (g *Generator) generateSwaps(config *datastructure.Configuration, b budget.State) []*datastructure.Mutation {
	var swaps []*datastructure.Mutation
	allocated := config.Allocated()

	for _, r := range g.removable(config) {
		remaining := allocated.Clone()
		remaining.Remove(r)

		for _, a := range g.graph.Frontier(remaining) {
			if a == r {
				continue
			}
			m := datastructure.NewSwapMutation(r, a)
			if b.CanRespec(m) && b.CanAllocate(m) {
				swaps = append(swaps, m)
			}
		}
	}
	return swaps
}

// removable returns the allocated nodes whose removal leaves every other
// allocated node reachable from the class start. the class start itself is
// never removable. one BFS per allocated node, each restricted to the
// allocated set.
func (g *Generator) removable(config *datastructure.Configuration) []datastructure.Index {
	allocated := config.Allocated()
	classStart := config.GetClassStart()

	var out []datastructure.Index
	for _, r := range allocated.SortedIDs() {
		if r == classStart {
			continue
		}
		remaining := allocated.Clone()
		remaining.Remove(r)
		reached := g.graph.ReachableFrom(classStart, remaining)
		if reached.Len() == remaining.Len() {
			out = append(out, r)
		}
	}
	return out
}

// sortByValue orders candidates by the value score of their added node
// descending, node id ascending as the deterministic tie-break.
func (g *Generator) sortByValue(ms []*datastructure.Mutation) {
	sort.SliceStable(ms, func(i, j int) bool {
		vi, vj := g.valueScore(ms[i]), g.valueScore(ms[j])
		if vi != vj {
			return vi > vj
		}
		return ms[i].GetAdded()[0] < ms[j].GetAdded()[0]
	})
}

func (g *Generator) valueScore(m *datastructure.Mutation) int {
	n, err := g.graph.GetNode(m.GetAdded()[0])
	if err != nil {
		return -1
	}
	return n.GetKind().ValueScore()
}
