package datastructure

import (
	"sort"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
)

// Configuration is one candidate build: character level plus the set of
// allocated passive nodes. it is an immutable value, Apply returns a fresh
// copy-with-delta and never mutates the receiver, so configurations can be
// shared freely across goroutines and iterations.
type Configuration struct {
	allocated  NodeSet
	level      int
	classStart Index
}

func NewConfiguration(level int, classStart Index, allocated []Index) (*Configuration, error) {
	if level < pkg.MIN_CHARACTER_LEVEL || level > pkg.MAX_CHARACTER_LEVEL {
		return nil, util.WrapErrorf(nil, util.ErrInvalidConfiguration,
			"character level %d outside [%d, %d]", level, pkg.MIN_CHARACTER_LEVEL, pkg.MAX_CHARACTER_LEVEL)
	}

	set := NewNodeSet(allocated...)
	set.Add(classStart)
	return &Configuration{
		level:      level,
		classStart: classStart,
		allocated:  set,
	}, nil
}

func (c *Configuration) GetLevel() int {
	return c.level
}

func (c *Configuration) GetClassStart() Index {
	return c.classStart
}

func (c *Configuration) Has(id Index) bool {
	return c.allocated.Has(id)
}

func (c *Configuration) NumberOfAllocated() int {
	return c.allocated.Len()
}

// Allocated returns the allocated set. callers must treat it as read-only.
func (c *Configuration) Allocated() NodeSet {
	return c.allocated
}

func (c *Configuration) AllocatedIDs() []Index {
	return c.allocated.SortedIDs()
}

// Apply returns a new configuration with the mutation's removals and
// additions applied. the receiver is left untouched.
func (c *Configuration) Apply(m *Mutation) *Configuration {
	next := c.allocated.Clone()
	for _, id := range m.GetRemoved() {
		next.Remove(id)
	}
	for _, id := range m.GetAdded() {
		next.Add(id)
	}
	return &Configuration{
		level:      c.level,
		classStart: c.classStart,
		allocated:  next,
	}
}

// Validate checks the structural invariant: every allocated node reachable
// from the class start using allocated edges only.
func (c *Configuration) Validate(graph *TreeGraph) error {
	if !graph.HasNode(c.classStart) {
		return util.WrapErrorf(nil, util.ErrInvalidNode, "class start %d not in passive tree", c.classStart)
	}
	for id := range c.allocated {
		if !graph.HasNode(id) {
			return util.WrapErrorf(nil, util.ErrInvalidNode, "allocated node %d not in passive tree", id)
		}
	}
	reached := graph.ReachableFrom(c.classStart, c.allocated)
	if reached.Len() != c.allocated.Len() {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration,
			"allocated set disconnected: %d of %d nodes reachable from class start %d",
			reached.Len(), c.allocated.Len(), c.classStart)
	}
	return nil
}

// Diff returns the nodes added and removed in c relative to base, ascending.
func (c *Configuration) Diff(base *Configuration) (added, removed []Index) {
	for id := range c.allocated {
		if !base.allocated.Has(id) {
			added = append(added, id)
		}
	}
	for id := range base.allocated {
		if !c.allocated.Has(id) {
			removed = append(removed, id)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i] < added[j] })
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return added, removed
}
