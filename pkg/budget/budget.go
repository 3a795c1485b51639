// Package budget accounts for the two independent point pools of a passive
// tree optimization: the unallocated pool, funding net additions, and the
// respec pool, funding removals. the two are easy to confuse, the invariant
// that keeps them apart is net accounting: a swap's removal credits its
// addition against the unallocated pool and charges only the respec pool.
package budget

import (
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
)

const UnlimitedRespec = -1

// State is an immutable budget snapshot. Apply returns a new State, the
// receiver is never mutated.
type State struct {
	unallocatedAvailable int
	unallocatedUsed      int
	respecAvailable      int // UnlimitedRespec means no respec cap
	respecUsed           int
}

func NewState(unallocatedAvailable, respecAvailable int) (State, error) {
	if unallocatedAvailable < 0 {
		return State{}, util.WrapErrorf(nil, util.ErrInvalidConfiguration,
			"negative unallocated budget %d", unallocatedAvailable)
	}
	if respecAvailable < 0 && respecAvailable != UnlimitedRespec {
		return State{}, util.WrapErrorf(nil, util.ErrInvalidConfiguration,
			"negative respec budget %d", respecAvailable)
	}
	return State{
		unallocatedAvailable: unallocatedAvailable,
		respecAvailable:      respecAvailable,
	}, nil
}

func (s State) UnallocatedAvailable() int {
	return s.unallocatedAvailable
}

func (s State) UnallocatedUsed() int {
	return s.unallocatedUsed
}

func (s State) RespecAvailable() int {
	return s.respecAvailable
}

func (s State) RespecUsed() int {
	return s.respecUsed
}

func (s State) RespecUnlimited() bool {
	return s.respecAvailable == UnlimitedRespec
}

// MaxUnallocatedPoints is the total passive points a character of the given
// level has to spend.
func MaxUnallocatedPoints(level int) int {
	return level + pkg.PASSIVE_POINTS_LEVEL_OFFSET
}

// CanAllocate reports whether the unallocated pool can fund the mutation.
// the charge is net: removals credit additions, and a pure removal costs
// nothing here.
func (s State) CanAllocate(m *datastructure.Mutation) bool {
	return s.unallocatedUsed+m.NetUnallocatedCost() <= s.unallocatedAvailable
}

// CanRespec reports whether the respec pool can fund the mutation's
// removals, one point each. always true when respec is unlimited.
func (s State) CanRespec(m *datastructure.Mutation) bool {
	if s.RespecUnlimited() {
		return true
	}
	return s.respecUsed+m.RespecCost() <= s.respecAvailable
}

// Apply returns the budget state after committing the mutation. callers
// must have checked CanAllocate and CanRespec first.
func (s State) Apply(m *datastructure.Mutation) State {
	next := s
	next.unallocatedUsed += m.NetUnallocatedCost()
	next.respecUsed += m.RespecCost()
	return next
}

// Validate is the defensive re-check the optimizer runs before committing
// an accepted mutation. a failure here is a logic defect in the neighbor
// generator, reported as a fatal budget violation.
func (s State) Validate(m *datastructure.Mutation) error {
	if !s.CanAllocate(m) {
		return util.WrapErrorf(nil, util.ErrBudgetViolation,
			"unallocated pool overrun: used %d + net %d > available %d",
			s.unallocatedUsed, m.NetUnallocatedCost(), s.unallocatedAvailable)
	}
	if !s.CanRespec(m) {
		return util.WrapErrorf(nil, util.ErrBudgetViolation,
			"respec pool overrun: used %d + %d > available %d",
			s.respecUsed, m.RespecCost(), s.respecAvailable)
	}
	return nil
}
