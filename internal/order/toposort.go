package order

import (
	"fmt"
	"sort"
)

// CycleError reports the nodes that take part in a dependency cycle.
type CycleError struct {
	// Participants are node indices on a cycle, ascending.
	Participants []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected among nodes %v", e.Participants)
}

// TieBreaker picks which ready node runs next. ready is sorted ascending and
// never empty; the returned value is a position in ready.
type TieBreaker func(ready []int) int

// First always picks the smallest ready index.
func First(_ []int) int {
	return 0
}

// Alphabetic returns a tie-breaker for nodes that opt into ordering by name.
// When the smallest ready node is eligible, the eligible ready node with the
// smallest name is chosen instead; ineligible nodes keep their index order.
func Alphabetic(names []string, eligible func(i int) bool) TieBreaker {
	return func(ready []int) int {
		if !eligible(ready[0]) {
			return 0
		}

		best := 0
		for k := 1; k < len(ready); k++ {
			if eligible(ready[k]) && names[ready[k]] < names[ready[best]] {
				best = k
			}
		}

		return best
	}
}

// Sort returns indices in execution order.
//
// Nodes are by index, 0..n-1. depsFn(i) yields indices that must be executed
// before i. A nil tie-breaker behaves like First. If a cycle exists, a
// *CycleError naming its participants is returned.
func Sort(n int, depsFn func(i int) []int, tie TieBreaker) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	if tie == nil {
		tie = First
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		k := tie(ready)
		i := ready[k]
		ready = append(ready[:k], ready[k+1:]...)

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				pos := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[pos+1:], ready[pos:])
				ready[pos] = j
			}
		}
	}

	if len(order) != n {
		return nil, &CycleError{Participants: cycleParticipants(indeg, out)}
	}

	return order, nil
}

// cycleParticipants narrows the unsorted remainder down to nodes on a cycle by
// repeatedly dropping nodes that no remaining node depends on.
func cycleParticipants(indeg []int, out [][]int) []int {
	remaining := make(map[int]bool)

	for i, d := range indeg {
		if d > 0 {
			remaining[i] = true
		}
	}

	for changed := true; changed; {
		changed = false

		for i := range remaining {
			hasDependent := false

			for _, j := range out[i] {
				if remaining[j] {
					hasDependent = true
					break
				}
			}

			if !hasDependent {
				delete(remaining, i)

				changed = true
			}
		}
	}

	result := make([]int, 0, len(remaining))
	for i := range remaining {
		result = append(result, i)
	}

	sort.Ints(result)

	return result
}
