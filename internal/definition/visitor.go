package definition

// Visitor receives every node of a definition graph. Adding a node kind adds
// a method here, so every implementation must handle it.
type Visitor interface {
	VisitTargetClass(t *TargetClassDefinition) error
	VisitMixin(m *MixinDefinition) error
	VisitMethod(m *MethodDefinition) error
	VisitProperty(p *PropertyDefinition) error
	VisitEvent(e *EventDefinition) error
	VisitAttribute(a *AttributeDefinition) error
	VisitRequiredTargetCallType(r *RequiredTargetCallType) error
	VisitRequiredNextCallType(r *RequiredNextCallType) error
	VisitRequiredMixinType(r *RequiredMixinType) error
	VisitRequiredMethod(m *RequiredMethod) error
	VisitThisDependency(d *ThisDependency) error
	VisitBaseDependency(d *BaseDependency) error
	VisitMixinDependency(d *MixinDependency) error
	VisitInterfaceIntroduction(i *InterfaceIntroduction) error
	VisitNonInterfaceIntroduction(i *NonInterfaceIntroduction) error
	VisitAttributeIntroduction(i *AttributeIntroduction) error
	VisitNonAttributeIntroduction(i *NonAttributeIntroduction) error
	VisitSuppressedAttributeIntroduction(i *SuppressedAttributeIntroduction) error
}

// Walk visits the graph depth first in a fixed order: the target, its
// attributes and members, then every mixin by MixinIndex (attributes,
// members, introductions, dependencies), then the requirements with their
// required methods. The first error stops the walk.
func Walk(t *TargetClassDefinition, v Visitor) error {
	w := walker{v: v}

	w.node(t)
	w.class(&t.ClassDefinitionBase)

	for m := range t.mixins.All() {
		w.mixin(m)
	}

	for r := range t.Requirements() {
		w.node(r)
		w.collection(r.RequiredMethods())
	}

	return w.err
}

// WalkFunc calls fn for every node in Walk order.
func WalkFunc(t *TargetClassDefinition, fn func(Node) error) error {
	return Walk(t, funcVisitor(fn))
}

type walker struct {
	v   Visitor
	err error
}

func (w *walker) node(n Node) {
	if w.err == nil {
		w.err = n.accept(w.v)
	}
}

// collection is implemented by UniqueCollection and MultiCollection.
type collection interface {
	Accept(v Visitor) error
}

func (w *walker) collection(c collection) {
	if w.err == nil {
		w.err = c.Accept(w.v)
	}
}

func (w *walker) class(c *ClassDefinitionBase) {
	w.collection(c.attributes)

	for m := range c.Members() {
		w.member(m)
	}
}

func (w *walker) member(m MemberDefinition) {
	w.node(m)

	mb := m.memberBase()
	w.collection(mb.attributes)
	w.introductions(&mb.attributeIntroducer)

	switch mm := m.(type) {
	case *PropertyDefinition:
		w.accessors(mm.getter, mm.setter)
	case *EventDefinition:
		w.accessors(mm.adder, mm.remover)
	}
}

func (w *walker) accessors(ms ...*MethodDefinition) {
	for _, m := range ms {
		if m != nil {
			w.member(m)
		}
	}
}

func (w *walker) introductions(a *attributeIntroducer) {
	w.collection(a.attributeIntroductions)
	w.collection(a.nonAttributeIntroductions)
	w.collection(a.suppressedIntroductions)
}

func (w *walker) mixin(m *MixinDefinition) {
	w.node(m)
	w.class(&m.ClassDefinitionBase)

	w.collection(m.interfaceIntroductions)
	w.collection(m.nonInterfaceIntroductions)
	w.introductions(&m.attributeIntroducer)

	for d := range m.Dependencies() {
		w.dependency(d)
	}
}

func (w *walker) dependency(d Dependency) {
	w.node(d)

	for agg := range d.AggregatedDependencies().All() {
		w.dependency(agg)
	}
}

// funcVisitor adapts a function to Visitor.
type funcVisitor func(Node) error

func (f funcVisitor) VisitTargetClass(t *TargetClassDefinition) error             { return f(t) }
func (f funcVisitor) VisitMixin(m *MixinDefinition) error                         { return f(m) }
func (f funcVisitor) VisitMethod(m *MethodDefinition) error                       { return f(m) }
func (f funcVisitor) VisitProperty(p *PropertyDefinition) error                   { return f(p) }
func (f funcVisitor) VisitEvent(e *EventDefinition) error                         { return f(e) }
func (f funcVisitor) VisitAttribute(a *AttributeDefinition) error                 { return f(a) }
func (f funcVisitor) VisitRequiredTargetCallType(r *RequiredTargetCallType) error { return f(r) }
func (f funcVisitor) VisitRequiredNextCallType(r *RequiredNextCallType) error     { return f(r) }
func (f funcVisitor) VisitRequiredMixinType(r *RequiredMixinType) error           { return f(r) }
func (f funcVisitor) VisitRequiredMethod(m *RequiredMethod) error                 { return f(m) }
func (f funcVisitor) VisitThisDependency(d *ThisDependency) error                 { return f(d) }
func (f funcVisitor) VisitBaseDependency(d *BaseDependency) error                 { return f(d) }
func (f funcVisitor) VisitMixinDependency(d *MixinDependency) error               { return f(d) }
func (f funcVisitor) VisitInterfaceIntroduction(i *InterfaceIntroduction) error   { return f(i) }

func (f funcVisitor) VisitNonInterfaceIntroduction(i *NonInterfaceIntroduction) error {
	return f(i)
}

func (f funcVisitor) VisitAttributeIntroduction(i *AttributeIntroduction) error { return f(i) }

func (f funcVisitor) VisitNonAttributeIntroduction(i *NonAttributeIntroduction) error {
	return f(i)
}

func (f funcVisitor) VisitSuppressedAttributeIntroduction(i *SuppressedAttributeIntroduction) error {
	return f(i)
}
