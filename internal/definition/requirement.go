package definition

import (
	"mixin-composer/internal/analyze"
)

// dependencyKind tells this, base and mixin dependencies (and their
// requirements) apart during resolution.
type dependencyKind int

const (
	thisKind dependencyKind = iota
	baseKind
	mixinKind
)

// RequirementDefinition is a type some mixin needs from the target or from
// other mixins.
type RequirementDefinition interface {
	Node
	Type() analyze.TypeID
	TargetClass() *TargetClassDefinition
	// RequiredMethods maps every method of the required interface to its
	// implementation, keyed by signature.
	RequiredMethods() *UniqueCollection[string, *RequiredMethod]
	// RequiringDependencies are the dependencies pointing at this requirement.
	RequiringDependencies() *UniqueCollection[Dependency, Dependency]
	IsEmptyInterface() bool
	IsAggregatorInterface() bool
	// Implementer returns the class providing the required type, or nil.
	Implementer() ClassDefinition

	requirementBase() *RequirementDefinitionBase
}

// RequirementDefinitionBase is the storage shared by all requirement kinds.
type RequirementDefinitionBase struct {
	id        analyze.TypeID
	target    *TargetClassDefinition
	kind      dependencyKind
	methods   *UniqueCollection[string, *RequiredMethod]
	requiring *UniqueCollection[Dependency, Dependency]
}

func newRequirementBase(lc *lifecycle, target *TargetClassDefinition, id analyze.TypeID,
	kind dependencyKind) RequirementDefinitionBase {
	return RequirementDefinitionBase{
		id:      id,
		target:  target,
		kind:    kind,
		methods: newUnique[string, *RequiredMethod](lc, nil),
		// One depender cannot require the same type twice through the same
		// aggregator (or twice directly).
		requiring: newUnique[Dependency, Dependency](lc, func(existing, added Dependency) bool {
			return existing.Depender() == added.Depender() && existing.Aggregator() == added.Aggregator()
		}),
	}
}

// Type returns the required type.
func (r *RequirementDefinitionBase) Type() analyze.TypeID { return r.id }

// TargetClass returns the owning target.
func (r *RequirementDefinitionBase) TargetClass() *TargetClassDefinition { return r.target }

// Parent implements Node.
func (r *RequirementDefinitionBase) Parent() Node { return r.target }

// RequiredMethods returns the required methods keyed by signature.
func (r *RequirementDefinitionBase) RequiredMethods() *UniqueCollection[string, *RequiredMethod] {
	return r.methods
}

// RequiringDependencies returns the dependencies pointing at the requirement.
func (r *RequirementDefinitionBase) RequiringDependencies() *UniqueCollection[Dependency, Dependency] {
	return r.requiring
}

// IsEmptyInterface reports whether the required type is an interface without
// members of its own.
func (r *RequirementDefinitionBase) IsEmptyInterface() bool {
	return r.target.graph.IsEmptyInterface(r.id)
}

// IsAggregatorInterface reports whether the required type is an empty
// interface extending other interfaces.
func (r *RequirementDefinitionBase) IsAggregatorInterface() bool {
	return r.target.graph.IsAggregatorInterface(r.id)
}

// Implementer returns the class providing the required type, or nil.
func (r *RequirementDefinitionBase) Implementer() ClassDefinition {
	return resolveImplementer(r.target, r.id, r.kind)
}

func (r *RequirementDefinitionBase) requirementBase() *RequirementDefinitionBase { return r }

func (r *RequirementDefinitionBase) fullName(marker string) string {
	return r.target.FullName() + "?" + marker + ":" + r.id.Short()
}

// RequiredTargetCallType is a face requirement: an interface the composed
// object must expose, either required by a this dependency or composed
// explicitly.
type RequiredTargetCallType struct {
	RequirementDefinitionBase

	composed bool
}

// Kind implements Node.
func (r *RequiredTargetCallType) Kind() NodeKind { return KindRequiredTargetCallType }

// FullName implements Node.
func (r *RequiredTargetCallType) FullName() string { return r.fullName("this") }

// IsComposedInterface reports whether the class context composes the
// interface explicitly.
func (r *RequiredTargetCallType) IsComposedInterface() bool { return r.composed }

func (r *RequiredTargetCallType) accept(v Visitor) error { return v.VisitRequiredTargetCallType(r) }

// RequiredNextCallType is a base-call requirement: an interface a mixin calls
// on the next element of the chain.
type RequiredNextCallType struct {
	RequirementDefinitionBase
}

// Kind implements Node.
func (r *RequiredNextCallType) Kind() NodeKind { return KindRequiredNextCallType }

// FullName implements Node.
func (r *RequiredNextCallType) FullName() string { return r.fullName("base") }

func (r *RequiredNextCallType) accept(v Visitor) error { return v.VisitRequiredNextCallType(r) }

// RequiredMixinType is the requirement of an explicit mixin dependency.
type RequiredMixinType struct {
	RequirementDefinitionBase
}

// Kind implements Node.
func (r *RequiredMixinType) Kind() NodeKind { return KindRequiredMixinType }

// FullName implements Node.
func (r *RequiredMixinType) FullName() string { return r.fullName("mixin") }

func (r *RequiredMixinType) accept(v Visitor) error { return v.VisitRequiredMixinType(r) }

// RequiredMethod maps a method of a required interface to the member
// implementing it.
type RequiredMethod struct {
	requirement  RequirementDefinition
	info         analyze.MethodInfo
	implementing *MethodDefinition
}

// Kind implements Node.
func (m *RequiredMethod) Kind() NodeKind { return KindRequiredMethod }

// Parent implements Node.
func (m *RequiredMethod) Parent() Node { return m.requirement }

// FullName implements Node.
func (m *RequiredMethod) FullName() string {
	return m.requirement.FullName() + "." + m.info.Name
}

// Requirement returns the owning requirement.
func (m *RequiredMethod) Requirement() RequirementDefinition { return m.requirement }

// InterfaceMethod returns the required method.
func (m *RequiredMethod) InterfaceMethod() analyze.MethodInfo { return m.info }

// ImplementingMethod returns the implementation, or nil when none was found.
func (m *RequiredMethod) ImplementingMethod() *MethodDefinition { return m.implementing }

func (m *RequiredMethod) accept(v Visitor) error { return v.VisitRequiredMethod(m) }
