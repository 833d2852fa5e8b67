package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deps(m map[int][]int) func(int) []int {
	return func(i int) []int { return m[i] }
}

func TestSort_Order(t *testing.T) {
	order, err := Sort(3, deps(map[int][]int{1: {0}, 2: {1}}), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	exp := []int{0, 1, 2}
	if len(order) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, order)
	}

	for i := range exp {
		if order[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, order)
		}
	}
}

func TestSort_DependencyMovesEarlier(t *testing.T) {
	// 0 depends on 2: 2 must come first, 1 keeps its place after 0.
	order, err := Sort(3, deps(map[int][]int{0: {2}}), First)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestSort_Empty(t *testing.T) {
	order, err := Sort(0, deps(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestSort_OutOfRange(t *testing.T) {
	_, err := Sort(2, deps(map[int][]int{0: {5}}), nil)
	require.Error(t, err)
}

func TestSort_Cycle(t *testing.T) {
	// 0 <-> 1 cycle, 2 depends on the cycle, 3 is free.
	_, err := Sort(4, deps(map[int][]int{0: {1}, 1: {0}, 2: {1}}), nil)
	require.Error(t, err)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []int{0, 1}, cycleErr.Participants)
	assert.Contains(t, err.Error(), "cycle detected")
}

func TestSort_SelfCycle(t *testing.T) {
	_, err := Sort(2, deps(map[int][]int{1: {1}}), nil)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []int{1}, cycleErr.Participants)
}

func TestAlphabetic(t *testing.T) {
	names := []string{"Zeta", "Alpha", "Mid", "Beta"}

	t.Run("all eligible", func(t *testing.T) {
		tie := Alphabetic(names, func(int) bool { return true })
		order, err := Sort(4, deps(nil), tie)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 2, 0}, order)
	})

	t.Run("none eligible keeps declaration order", func(t *testing.T) {
		tie := Alphabetic(names, func(int) bool { return false })
		order, err := Sort(4, deps(nil), tie)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, order)
	})

	t.Run("ineligible head is not reordered", func(t *testing.T) {
		// Zeta (0) is not eligible and stays first; Alpha, Mid, Beta sort by name.
		tie := Alphabetic(names, func(i int) bool { return i != 0 })
		order, err := Sort(4, deps(nil), tie)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 3, 2}, order)
	})

	t.Run("dependencies still win", func(t *testing.T) {
		// Alpha (1) depends on Zeta (0).
		tie := Alphabetic(names, func(int) bool { return true })
		order, err := Sort(4, deps(map[int][]int{1: {0}}), tie)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 0, 1}, order)
	})
}
