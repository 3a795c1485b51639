package datastructure

import (
	"fmt"
)

type MutationKind uint8

const (
	ADD_MUTATION MutationKind = iota
	SWAP_MUTATION
)

func (k MutationKind) String() string {
	if k == ADD_MUTATION {
		return "add"
	}
	return "swap"
}

// Mutation is one candidate move produced by the neighbor generator:
// either Add (attach one frontier node) or Swap (remove one removable node,
// attach one replacement). applying it to a configuration yields a new
// configuration, see Configuration.Apply.
type Mutation struct {
	added   []Index
	removed []Index
	kind    MutationKind
}

func NewAddMutation(node Index) *Mutation {
	return &Mutation{
		kind:  ADD_MUTATION,
		added: []Index{node},
	}
}

func NewSwapMutation(removed, added Index) *Mutation {
	return &Mutation{
		kind:    SWAP_MUTATION,
		added:   []Index{added},
		removed: []Index{removed},
	}
}

func (m *Mutation) GetKind() MutationKind {
	return m.kind
}

func (m *Mutation) GetAdded() []Index {
	return m.added
}

func (m *Mutation) GetRemoved() []Index {
	return m.removed
}

// NetUnallocatedCost is the points charged against the unallocated pool.
// removals credit additions: a one-for-one swap costs zero points, never one.
func (m *Mutation) NetUnallocatedCost() int {
	net := len(m.added) - len(m.removed)
	if net < 0 {
		return 0
	}
	return net
}

// RespecCost is the points charged against the respec pool, one per removal.
func (m *Mutation) RespecCost() int {
	return len(m.removed)
}

func (m *Mutation) String() string {
	if m.kind == ADD_MUTATION {
		return fmt.Sprintf("add(%v)", m.added)
	}
	return fmt.Sprintf("swap(-%v +%v)", m.removed, m.added)
}
