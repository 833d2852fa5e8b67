package definition

import (
	"iter"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

// ClassDefinition is a class taking part in a composition: the target or one
// of its mixins.
type ClassDefinition interface {
	Node
	Type() analyze.TypeID
	Info() *analyze.TypeInfo
	ImplementedInterfaces() []analyze.TypeID
	Methods() *UniqueCollection[string, *MethodDefinition]
	Properties() *UniqueCollection[string, *PropertyDefinition]
	Events() *UniqueCollection[string, *EventDefinition]
	Members() iter.Seq[MemberDefinition]
	Attributes() *MultiCollection[analyze.TypeID, *AttributeDefinition]

	classBase() *ClassDefinitionBase
}

// ClassDefinitionBase is the storage shared by target and mixin definitions.
type ClassDefinitionBase struct {
	info       *analyze.TypeInfo
	interfaces []analyze.TypeID
	methods    *UniqueCollection[string, *MethodDefinition]
	properties *UniqueCollection[string, *PropertyDefinition]
	events     *UniqueCollection[string, *EventDefinition]
	attributes *MultiCollection[analyze.TypeID, *AttributeDefinition]
}

func newClassBase(lc *lifecycle, info *analyze.TypeInfo, interfaces []analyze.TypeID) ClassDefinitionBase {
	return ClassDefinitionBase{
		info:       info,
		interfaces: interfaces,
		methods:    newUnique[string, *MethodDefinition](lc, nil),
		properties: newUnique[string, *PropertyDefinition](lc, nil),
		events:     newUnique[string, *EventDefinition](lc, nil),
		attributes: newMulti[analyze.TypeID, *AttributeDefinition](lc),
	}
}

// Type returns the reflected type.
func (c *ClassDefinitionBase) Type() analyze.TypeID { return c.info.ID }

// Info returns the reflected type information.
func (c *ClassDefinitionBase) Info() *analyze.TypeInfo { return c.info }

// ImplementedInterfaces returns every interface the class implements,
// including inherited ones.
func (c *ClassDefinitionBase) ImplementedInterfaces() []analyze.TypeID {
	return append([]analyze.TypeID(nil), c.interfaces...)
}

// Methods returns the method definitions keyed by signature.
func (c *ClassDefinitionBase) Methods() *UniqueCollection[string, *MethodDefinition] {
	return c.methods
}

// Properties returns the property definitions keyed by name.
func (c *ClassDefinitionBase) Properties() *UniqueCollection[string, *PropertyDefinition] {
	return c.properties
}

// Events returns the event definitions keyed by name.
func (c *ClassDefinitionBase) Events() *UniqueCollection[string, *EventDefinition] { return c.events }

// Attributes returns the attributes declared directly on the class.
func (c *ClassDefinitionBase) Attributes() *MultiCollection[analyze.TypeID, *AttributeDefinition] {
	return c.attributes
}

// Members iterates methods, then properties, then events.
func (c *ClassDefinitionBase) Members() iter.Seq[MemberDefinition] {
	return Concat(
		CovariantOf[MemberDefinition](c.methods).All(),
		CovariantOf[MemberDefinition](c.properties).All(),
		CovariantOf[MemberDefinition](c.events).All(),
	)
}

func (c *ClassDefinitionBase) classBase() *ClassDefinitionBase { return c }

// TargetClassDefinition is the root of a composition.
type TargetClassDefinition struct {
	ClassDefinitionBase

	context classcontext.ClassContext
	graph   *analyze.TypeGraph

	mixins                  *UniqueCollection[analyze.TypeID, *MixinDefinition]
	requiredTargetCallTypes *UniqueCollection[analyze.TypeID, *RequiredTargetCallType]
	requiredNextCallTypes   *UniqueCollection[analyze.TypeID, *RequiredNextCallType]
	requiredMixinTypes      *UniqueCollection[analyze.TypeID, *RequiredMixinType]
	introducedInterfaces    *UniqueCollection[analyze.TypeID, *InterfaceIntroduction]
	introducedAttributes    *MultiCollection[analyze.TypeID, *AttributeIntroduction]

	// orderingCycle lists the mixins on a dependency cycle, if any.
	orderingCycle []analyze.TypeID
}

// Kind implements Node.
func (t *TargetClassDefinition) Kind() NodeKind { return KindTargetClass }

// Parent implements Node. The target is the root.
func (t *TargetClassDefinition) Parent() Node { return nil }

// FullName implements Node.
func (t *TargetClassDefinition) FullName() string { return t.path().String() }

func (t *TargetClassDefinition) path() *analyze.MemberPath {
	return analyze.NewMemberPath(t.Type().Short())
}

// Context returns the class context the definition was built from.
func (t *TargetClassDefinition) Context() classcontext.ClassContext { return t.context }

// Graph returns the type graph the definition was built against.
func (t *TargetClassDefinition) Graph() *analyze.TypeGraph { return t.graph }

// Mixins returns the mixins ordered by MixinIndex.
func (t *TargetClassDefinition) Mixins() *UniqueCollection[analyze.TypeID, *MixinDefinition] {
	return t.mixins
}

// RequiredTargetCallTypes returns the face requirements: interfaces the
// composed object must expose.
func (t *TargetClassDefinition) RequiredTargetCallTypes() *UniqueCollection[analyze.TypeID, *RequiredTargetCallType] {
	return t.requiredTargetCallTypes
}

// RequiredNextCallTypes returns the base-call requirements.
func (t *TargetClassDefinition) RequiredNextCallTypes() *UniqueCollection[analyze.TypeID, *RequiredNextCallType] {
	return t.requiredNextCallTypes
}

// RequiredMixinTypes returns the requirements of mixin dependencies.
func (t *TargetClassDefinition) RequiredMixinTypes() *UniqueCollection[analyze.TypeID, *RequiredMixinType] {
	return t.requiredMixinTypes
}

// IntroducedInterfaces returns the interfaces received from mixins.
func (t *TargetClassDefinition) IntroducedInterfaces() *UniqueCollection[analyze.TypeID, *InterfaceIntroduction] {
	return t.introducedInterfaces
}

// IntroducedAttributes returns the class-level attributes received from mixins.
func (t *TargetClassDefinition) IntroducedAttributes() *MultiCollection[analyze.TypeID, *AttributeIntroduction] {
	return t.introducedAttributes
}

// OrderingCycle returns the mixins that could not be ordered because they
// depend on each other. It is empty for a valid composition.
func (t *TargetClassDefinition) OrderingCycle() []analyze.TypeID {
	return append([]analyze.TypeID(nil), t.orderingCycle...)
}

// Requirements iterates face, next-call and mixin requirements in that order.
func (t *TargetClassDefinition) Requirements() iter.Seq[RequirementDefinition] {
	return Concat(
		CovariantOf[RequirementDefinition](t.requiredTargetCallTypes).All(),
		CovariantOf[RequirementDefinition](t.requiredNextCallTypes).All(),
		CovariantOf[RequirementDefinition](t.requiredMixinTypes).All(),
	)
}

// MixinByType returns the mixin definition of a type.
func (t *TargetClassDefinition) MixinByType(id analyze.TypeID) (*MixinDefinition, bool) {
	return t.mixins.Get(id)
}

func (t *TargetClassDefinition) accept(v Visitor) error { return v.VisitTargetClass(t) }

// MixinDefinition is one mixin of a composition.
type MixinDefinition struct {
	ClassDefinitionBase
	attributeIntroducer

	target                    *TargetClassDefinition
	kind                      classcontext.MixinKind
	index                     int
	declarationIndex          int
	acceptsAlphabeticOrdering bool

	interfaceIntroductions    *UniqueCollection[analyze.TypeID, *InterfaceIntroduction]
	nonInterfaceIntroductions *UniqueCollection[analyze.TypeID, *NonInterfaceIntroduction]

	thisDependencies  *UniqueCollection[analyze.TypeID, *ThisDependency]
	baseDependencies  *UniqueCollection[analyze.TypeID, *BaseDependency]
	mixinDependencies *UniqueCollection[analyze.TypeID, *MixinDependency]
}

// Kind implements Node.
func (m *MixinDefinition) Kind() NodeKind { return KindMixin }

// Parent implements Node.
func (m *MixinDefinition) Parent() Node { return m.target }

// FullName implements Node.
func (m *MixinDefinition) FullName() string { return m.path().String() }

func (m *MixinDefinition) path() *analyze.MemberPath {
	return m.target.path().Mixin(m.Type().Short())
}

// TargetClass returns the owning target.
func (m *MixinDefinition) TargetClass() *TargetClassDefinition { return m.target }

// MixinKind returns the structural role of the mixin.
func (m *MixinDefinition) MixinKind() classcontext.MixinKind { return m.kind }

// MixinIndex returns the position assigned by ordering.
func (m *MixinDefinition) MixinIndex() int { return m.index }

// DeclarationIndex returns the position in the class context.
func (m *MixinDefinition) DeclarationIndex() int { return m.declarationIndex }

// AcceptsAlphabeticOrdering reports whether the mixin may be ordered by name.
func (m *MixinDefinition) AcceptsAlphabeticOrdering() bool { return m.acceptsAlphabeticOrdering }

// InterfaceIntroductions returns the interfaces this mixin introduces.
func (m *MixinDefinition) InterfaceIntroductions() *UniqueCollection[analyze.TypeID, *InterfaceIntroduction] {
	return m.interfaceIntroductions
}

// NonInterfaceIntroductions returns the interfaces this mixin implements but
// does not introduce.
func (m *MixinDefinition) NonInterfaceIntroductions() *UniqueCollection[analyze.TypeID, *NonInterfaceIntroduction] {
	return m.nonInterfaceIntroductions
}

// ThisDependencies returns the dependencies on the composed object.
func (m *MixinDefinition) ThisDependencies() *UniqueCollection[analyze.TypeID, *ThisDependency] {
	return m.thisDependencies
}

// BaseDependencies returns the dependencies on the next call.
func (m *MixinDefinition) BaseDependencies() *UniqueCollection[analyze.TypeID, *BaseDependency] {
	return m.baseDependencies
}

// MixinDependencies returns the explicit dependencies on other mixins.
func (m *MixinDefinition) MixinDependencies() *UniqueCollection[analyze.TypeID, *MixinDependency] {
	return m.mixinDependencies
}

// Dependencies iterates this, base and mixin dependencies.
func (m *MixinDefinition) Dependencies() iter.Seq[Dependency] {
	return Concat(
		CovariantOf[Dependency](m.thisDependencies).All(),
		CovariantOf[Dependency](m.baseDependencies).All(),
		CovariantOf[Dependency](m.mixinDependencies).All(),
	)
}

// GetOrderRelevantDependencies returns base dependencies followed by mixin
// dependencies. This dependencies do not constrain ordering.
func (m *MixinDefinition) GetOrderRelevantDependencies() []Dependency {
	result := make([]Dependency, 0, m.baseDependencies.Len()+m.mixinDependencies.Len())

	for d := range m.baseDependencies.All() {
		result = append(result, d)
	}

	for d := range m.mixinDependencies.All() {
		result = append(result, d)
	}

	return result
}

func (m *MixinDefinition) accept(v Visitor) error { return v.VisitMixin(m) }
