package definition

import (
	"errors"
	"fmt"

	"mixin-composer/internal/order"
)

// orderMixins assigns MixinIndex by a topological sort over the order
// relevant dependencies: a mixin comes after every mixin implementing one of
// them. A cycle leaves declaration order in place and is recorded for
// validation.
func (b *builder) orderMixins() error {
	t := b.target
	mixins := t.mixins.Values()

	pos := make(map[*MixinDefinition]int, len(mixins))
	names := make([]string, len(mixins))

	for i, m := range mixins {
		pos[m] = i
		names[i] = m.Type().String()
	}

	deps := func(i int) []int {
		var result []int

		for _, d := range mixins[i].GetOrderRelevantDependencies() {
			for _, leaf := range leaves(d) {
				if impl, ok := leaf.GetImplementer().(*MixinDefinition); ok && impl != mixins[i] {
					result = append(result, pos[impl])
				}
			}
		}

		return result
	}

	eligible := func(i int) bool { return mixins[i].acceptsAlphabeticOrdering }

	perm, err := order.Sort(len(mixins), deps, order.Alphabetic(names, eligible))
	if err != nil {
		var cycle *order.CycleError
		if !errors.As(err, &cycle) {
			return fmt.Errorf("sort mixins: %w", err)
		}

		for _, i := range cycle.Participants {
			t.orderingCycle = append(t.orderingCycle, mixins[i].Type())
		}

		perm = make([]int, len(mixins))
		for i := range perm {
			perm[i] = i
		}
	}

	for newPos, old := range perm {
		mixins[old].index = newPos
	}

	t.mixins.reorder(perm)

	return nil
}

// leaves returns the non-aggregate dependencies d stands for.
func leaves(d Dependency) []Dependency {
	if !d.IsAggregate() {
		return []Dependency{d}
	}

	var result []Dependency
	for child := range d.AggregatedDependencies().All() {
		result = append(result, leaves(child)...)
	}

	return result
}
