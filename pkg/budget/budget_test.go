package budget

import (
	"testing"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxUnallocatedPoints(t *testing.T) {
	assert.Equal(t, 24, MaxUnallocatedPoints(1))
	assert.Equal(t, 113, MaxUnallocatedPoints(90))
	assert.Equal(t, 123, MaxUnallocatedPoints(100))
}

func TestNewStateRejectsNegativeBudgets(t *testing.T) {
	_, err := NewState(-1, 0)
	assert.Error(t, err)

	_, err = NewState(0, -2)
	assert.Error(t, err)

	_, err = NewState(0, UnlimitedRespec)
	assert.NoError(t, err)
}

func TestCanAllocateBoundary(t *testing.T) {
	s, err := NewState(1, 0)
	require.NoError(t, err)

	add := datastructure.NewAddMutation(10)
	assert.True(t, s.CanAllocate(add), "cost exactly equal to the budget is accepted")

	s = s.Apply(add)
	assert.False(t, s.CanAllocate(datastructure.NewAddMutation(11)), "budget exhausted")
}

func TestSwapAccountingIsNetNotGross(t *testing.T) {
	// zero unallocated points. a one-for-one swap must still be fundable
	// because the removal credits the addition.
	s, err := NewState(0, 5)
	require.NoError(t, err)

	swap := datastructure.NewSwapMutation(10, 11)
	assert.Equal(t, 0, swap.NetUnallocatedCost())
	assert.Equal(t, 1, swap.RespecCost())
	assert.True(t, s.CanAllocate(swap))
	assert.True(t, s.CanRespec(swap))

	s = s.Apply(swap)
	assert.Equal(t, 0, s.UnallocatedUsed())
	assert.Equal(t, 1, s.RespecUsed())
}

func TestCanRespec(t *testing.T) {
	s, err := NewState(10, 1)
	require.NoError(t, err)

	swap := datastructure.NewSwapMutation(10, 11)
	assert.True(t, s.CanRespec(swap))

	s = s.Apply(swap)
	assert.False(t, s.CanRespec(datastructure.NewSwapMutation(12, 13)))

	unlimited, err := NewState(10, UnlimitedRespec)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.True(t, unlimited.CanRespec(swap))
		unlimited = unlimited.Apply(swap)
	}
}

func TestValidateReportsBudgetViolation(t *testing.T) {
	s, err := NewState(0, 1)
	require.NoError(t, err)

	assert.NoError(t, s.Validate(datastructure.NewSwapMutation(10, 11)), "net-zero swap needs no unallocated points")

	err = s.Validate(datastructure.NewAddMutation(10))
	assert.Error(t, err)

	noRespec, err := NewState(0, 0)
	require.NoError(t, err)
	assert.Error(t, noRespec.Validate(datastructure.NewSwapMutation(10, 11)))
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s, err := NewState(3, 3)
	require.NoError(t, err)

	_ = s.Apply(datastructure.NewAddMutation(10))
	assert.Equal(t, 0, s.UnallocatedUsed())
	assert.Equal(t, 0, s.RespecUsed())
}
