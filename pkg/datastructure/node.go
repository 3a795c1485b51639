package datastructure

import (
	"sort"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
)

type Index uint32

type Node struct {
	name      string
	stats     map[string]float64
	neighbors []Index
	id        Index
	kind      pkg.NodeKind
}

func NewNode(id Index, kind pkg.NodeKind, name string, neighbors []Index) *Node {
	return &Node{
		id:        id,
		kind:      kind,
		name:      name,
		neighbors: neighbors,
	}
}

// SetStats attaches the node's stat modifiers (modifier id -> magnitude).
// called once during tree load, never after.
func (n *Node) SetStats(stats map[string]float64) {
	n.stats = stats
}

func (n *Node) GetStat(id string) float64 {
	return n.stats[id]
}

func (n *Node) GetStats() map[string]float64 {
	return n.stats
}

func (n *Node) GetID() Index {
	return n.id
}

func (n *Node) GetKind() pkg.NodeKind {
	return n.kind
}

func (n *Node) GetName() string {
	return n.name
}

func (n *Node) GetNeighbors() []Index {
	return n.neighbors
}

func (n *Node) addNeighbor(id Index) {
	for _, nb := range n.neighbors {
		if nb == id {
			return
		}
	}
	n.neighbors = append(n.neighbors, id)
}

// NodeSet is a set of passive node ids. the zero value is not usable, use
// NewNodeSet.
type NodeSet map[Index]struct{}

func NewNodeSet(ids ...Index) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s NodeSet) Has(id Index) bool {
	_, ok := s[id]
	return ok
}

func (s NodeSet) Add(id Index) {
	s[id] = struct{}{}
}

func (s NodeSet) Remove(id Index) {
	delete(s, id)
}

func (s NodeSet) Len() int {
	return len(s)
}

func (s NodeSet) Clone() NodeSet {
	c := make(NodeSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// SortedIDs returns the members in ascending id order, for deterministic
// iteration and stable output.
func (s NodeSet) SortedIDs() []Index {
	ids := make([]Index, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
