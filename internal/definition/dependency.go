package definition

import (
	"mixin-composer/internal/analyze"
)

// Dependency is an edge from a mixin to a requirement.
type Dependency interface {
	Node
	Depender() *MixinDefinition
	RequiredType() RequirementDefinition
	// Aggregator returns the dependency this one was expanded from, or nil.
	Aggregator() Dependency
	// AggregatedDependencies are the expansions of an aggregator interface,
	// keyed by required type.
	AggregatedDependencies() *UniqueCollection[analyze.TypeID, Dependency]
	IsAggregate() bool
	// GetImplementer returns the class providing the required type, or nil.
	GetImplementer() ClassDefinition

	dependencyBase() *DependencyDefinitionBase
}

// DependencyDefinitionBase is the storage shared by all dependency kinds.
type DependencyDefinitionBase struct {
	depender   *MixinDefinition
	required   RequirementDefinition
	aggregator Dependency
	aggregated *UniqueCollection[analyze.TypeID, Dependency]
	kind       dependencyKind
}

func newDependencyBase(lc *lifecycle, depender *MixinDefinition, required RequirementDefinition,
	aggregator Dependency, kind dependencyKind) DependencyDefinitionBase {
	return DependencyDefinitionBase{
		depender:   depender,
		required:   required,
		aggregator: aggregator,
		aggregated: newUnique[analyze.TypeID, Dependency](lc, nil),
		kind:       kind,
	}
}

// Depender returns the mixin declaring the dependency.
func (d *DependencyDefinitionBase) Depender() *MixinDefinition { return d.depender }

// RequiredType returns the requirement the dependency points at.
func (d *DependencyDefinitionBase) RequiredType() RequirementDefinition { return d.required }

// Aggregator returns the aggregating dependency, or nil.
func (d *DependencyDefinitionBase) Aggregator() Dependency { return d.aggregator }

// AggregatedDependencies returns the expanded dependencies.
func (d *DependencyDefinitionBase) AggregatedDependencies() *UniqueCollection[analyze.TypeID, Dependency] {
	return d.aggregated
}

// IsAggregate reports whether the dependency was expanded into others.
func (d *DependencyDefinitionBase) IsAggregate() bool { return d.aggregated.Len() > 0 }

// Parent implements Node: the aggregator for expanded dependencies,
// otherwise the depender.
func (d *DependencyDefinitionBase) Parent() Node {
	if d.aggregator != nil {
		return d.aggregator
	}

	return d.depender
}

// GetImplementer returns the class providing the required type, or nil.
func (d *DependencyDefinitionBase) GetImplementer() ClassDefinition {
	return resolveImplementer(d.depender.target, d.required.Type(), d.kind)
}

func (d *DependencyDefinitionBase) dependencyBase() *DependencyDefinitionBase { return d }

func (d *DependencyDefinitionBase) fullName(marker string) string {
	return d.depender.FullName() + "->" + marker + ":" + d.required.Type().Short()
}

// resolveImplementer finds the class providing id on target:
//  1. the target itself when it is assignable to id,
//  2. the mixin introducing id,
//  3. for mixin dependencies on a non-interface, the mixin of that type,
//  4. the target for any other non-empty interface (structural match),
//  5. otherwise nothing.
func resolveImplementer(target *TargetClassDefinition, id analyze.TypeID, kind dependencyKind) ClassDefinition {
	g := target.graph

	if g.AssignableTo(target.Type(), id) {
		return target
	}

	if intro, ok := target.introducedInterfaces.Get(id); ok {
		return intro.implementer
	}

	if kind == mixinKind && !g.IsInterface(id) {
		if m, ok := target.mixins.Get(id); ok {
			return m
		}

		return nil
	}

	if g.IsInterface(id) && !g.IsEmptyInterface(id) {
		return target
	}

	return nil
}

// ThisDependency is a dependency on the composed object.
type ThisDependency struct {
	DependencyDefinitionBase
}

// Kind implements Node.
func (d *ThisDependency) Kind() NodeKind { return KindThisDependency }

// FullName implements Node.
func (d *ThisDependency) FullName() string { return d.fullName("this") }

func (d *ThisDependency) accept(v Visitor) error { return v.VisitThisDependency(d) }

// BaseDependency is a dependency on the next element of the call chain.
type BaseDependency struct {
	DependencyDefinitionBase
}

// Kind implements Node.
func (d *BaseDependency) Kind() NodeKind { return KindBaseDependency }

// FullName implements Node.
func (d *BaseDependency) FullName() string { return d.fullName("base") }

func (d *BaseDependency) accept(v Visitor) error { return v.VisitBaseDependency(d) }

// MixinDependency is an explicit dependency on another mixin.
type MixinDependency struct {
	DependencyDefinitionBase
}

// Kind implements Node.
func (d *MixinDependency) Kind() NodeKind { return KindMixinDependency }

// FullName implements Node.
func (d *MixinDependency) FullName() string { return d.fullName("mixin") }

func (d *MixinDependency) accept(v Visitor) error { return v.VisitMixinDependency(d) }
