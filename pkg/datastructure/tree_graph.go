package datastructure

import (
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
)

// TreeGraph is the static passive skill tree: node catalog plus undirected
// adjacency. built once at startup and shared read-only by every
// optimization run, so none of its methods mutate state.
type TreeGraph struct {
	nodes map[Index]*Node
}

func NewTreeGraph(nodes []*Node) *TreeGraph {
	g := &TreeGraph{
		nodes: make(map[Index]*Node, len(nodes)),
	}
	for _, n := range nodes {
		g.nodes[n.GetID()] = n
	}
	// mirror every edge so adjacency is symmetric regardless of how the
	// tree source listed connections
	for _, n := range nodes {
		for _, nb := range n.GetNeighbors() {
			if other, ok := g.nodes[nb]; ok {
				other.addNeighbor(n.GetID())
			}
		}
	}
	return g
}

func (g *TreeGraph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *TreeGraph) HasNode(id Index) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *TreeGraph) GetNode(id Index) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrInvalidNode, "node %d not in passive tree", id)
	}
	return n, nil
}

func (g *TreeGraph) GetNeighbors(id Index) ([]Index, error) {
	n, err := g.GetNode(id)
	if err != nil {
		return nil, err
	}
	return n.GetNeighbors(), nil
}

// IsConnected reports whether a path from `from` to `to` exists using only
// edges between nodes in `allocated`. BFS restricted to the allocated set,
// early exit on reaching `to`: cost is proportional to |allocated|, not to
// the whole tree.
func (g *TreeGraph) IsConnected(from, to Index, allocated NodeSet) bool {
	if from == to {
		return true
	}
	if !allocated.Has(from) || !allocated.Has(to) {
		return false
	}

	visited := make(NodeSet, allocated.Len())
	visited.Add(from)
	queue := make([]Index, 0, allocated.Len())
	queue = append(queue, from)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for _, nb := range n.GetNeighbors() {
			if nb == to {
				return true
			}
			if allocated.Has(nb) && !visited.Has(nb) {
				visited.Add(nb)
				queue = append(queue, nb)
			}
		}
	}
	return false
}

// ReachableFrom returns every allocated node reachable from start through
// allocated nodes, start included. one BFS per call, used by the removable
// test of the neighbor generator.
func (g *TreeGraph) ReachableFrom(start Index, allocated NodeSet) NodeSet {
	reached := make(NodeSet, allocated.Len())
	if !allocated.Has(start) {
		return reached
	}
	reached.Add(start)
	queue := make([]Index, 0, allocated.Len())
	queue = append(queue, start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for _, nb := range n.GetNeighbors() {
			if allocated.Has(nb) && !reached.Has(nb) {
				reached.Add(nb)
				queue = append(queue, nb)
			}
		}
	}
	return reached
}

// Frontier returns the unallocated nodes adjacent to at least one allocated
// node, in ascending id order.
func (g *TreeGraph) Frontier(allocated NodeSet) []Index {
	frontier := make(NodeSet)
	for id := range allocated {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		for _, nb := range n.GetNeighbors() {
			if !allocated.Has(nb) {
				frontier.Add(nb)
			}
		}
	}
	return frontier.SortedIDs()
}
