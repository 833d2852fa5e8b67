package definition

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

// Build creates the definition of a class context against a type graph.
//
// Build fails only on authoring errors (*AuthoringError): a malformed context,
// unknown types, duplicate members or requirements, or overrides whose
// signatures do not match. Composition problems such as unsatisfied
// requirements or ordering cycles are recorded in the graph and reported by
// validation.
func Build(g *analyze.TypeGraph, cc classcontext.ClassContext) (*TargetClassDefinition, error) {
	if err := cc.Validate(); err != nil {
		return nil, authoring("validate context", cc.String(), err)
	}

	b := &builder{graph: g, cc: cc, lc: &lifecycle{}}

	phases := []struct {
		name string
		run  func() error
	}{
		{"target", b.buildTarget},
		{"mixins", b.buildMixins},
		{"ordering", b.orderMixins},
		{"interface introductions", b.settleInterfaceIntroductions},
		{"overrides", b.wireOverrides},
		{"attribute introductions", b.introduceAttributes},
		{"composed interfaces", b.composeInterfaces},
		{"required methods", b.mapRequiredMethods},
	}

	for _, p := range phases {
		if err := p.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
	}

	b.lc.freeze()

	return b.target, nil
}

type builder struct {
	graph  *analyze.TypeGraph
	cc     classcontext.ClassContext
	lc     *lifecycle
	target *TargetClassDefinition
}

func (b *builder) lookup(id analyze.TypeID) (*analyze.TypeInfo, error) {
	info := b.graph.GetType(id)
	if info == nil {
		return nil, authoring("resolve type", id.String(), ErrUnknownType)
	}

	return info, nil
}

func (b *builder) buildTarget() error {
	info, err := b.lookup(b.cc.Target)
	if err != nil {
		return err
	}

	t := &TargetClassDefinition{
		ClassDefinitionBase:     newClassBase(b.lc, info, b.graph.AllInterfaces(info.ID)),
		context:                 b.cc,
		graph:                   b.graph,
		mixins:                  newUnique[analyze.TypeID, *MixinDefinition](b.lc, nil),
		requiredTargetCallTypes: newUnique[analyze.TypeID, *RequiredTargetCallType](b.lc, nil),
		requiredNextCallTypes:   newUnique[analyze.TypeID, *RequiredNextCallType](b.lc, nil),
		requiredMixinTypes:      newUnique[analyze.TypeID, *RequiredMixinType](b.lc, nil),
		introducedInterfaces:    newUnique[analyze.TypeID, *InterfaceIntroduction](b.lc, nil),
		introducedAttributes:    newMulti[analyze.TypeID, *AttributeIntroduction](b.lc),
	}
	b.target = t

	if err := b.addAttributes(t, t.attributes, info.Attributes); err != nil {
		return err
	}

	return b.addMembers(t)
}

func (b *builder) buildMixins() error {
	for i, mc := range b.cc.Mixins {
		info, err := b.lookup(mc.Type)
		if err != nil {
			return err
		}

		m := &MixinDefinition{
			ClassDefinitionBase:       newClassBase(b.lc, info, b.graph.AllInterfaces(info.ID)),
			attributeIntroducer:       newAttributeIntroducer(b.lc),
			target:                    b.target,
			kind:                      mc.Kind,
			index:                     i,
			declarationIndex:          i,
			acceptsAlphabeticOrdering: mc.AcceptsAlphabeticOrdering || info.HasAttribute(analyze.AttrAcceptsAlphabeticOrdering),
			thisDependencies:          newUnique[analyze.TypeID, *ThisDependency](b.lc, nil),
			baseDependencies:          newUnique[analyze.TypeID, *BaseDependency](b.lc, nil),
			mixinDependencies:         newUnique[analyze.TypeID, *MixinDependency](b.lc, nil),
		}

		if err := b.target.mixins.Add(info.ID, m); err != nil {
			return authoring("add mixin", info.ID.String(), err)
		}

		if err := b.addAttributes(m, m.attributes, info.Attributes); err != nil {
			return err
		}

		if err := b.addMembers(m); err != nil {
			return err
		}

		if err := b.introduceInterfaces(m); err != nil {
			return err
		}

		if err := b.addDependencies(m, mc); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) addAttributes(owner Node, into *MultiCollection[analyze.TypeID, *AttributeDefinition],
	attrs []analyze.AttributeInfo) error {
	for _, ai := range attrs {
		ad := &AttributeDefinition{info: ai, usage: b.graph.AttributeUsage(ai.Type), declarer: owner}
		if err := into.Add(ai.Type, ad); err != nil {
			return authoring("add attribute", ad.FullName(), err)
		}
	}

	return nil
}

// addMembers adds methods (own and inherited), properties and events.
func (b *builder) addMembers(cls ClassDefinition) error {
	cb := cls.classBase()
	id := cb.info.ID

	for _, mi := range b.graph.AllMethods(id) {
		md, err := b.newMethod(cls, cls, mi)
		if err != nil {
			return err
		}

		if err := cb.methods.Add(mi.Signature(), md); err != nil {
			return authoring("add method", md.FullName(), err)
		}
	}

	for i := range cb.info.Properties {
		pi := &cb.info.Properties[i]
		pd := &PropertyDefinition{
			MemberDefinitionBase: newMemberBase(b.lc, pi.Name, cls, cls, pi.Override),
			info:                 pi,
		}

		var err error
		if pd.getter, err = b.newAccessor(cls, pd, pi.Getter); err != nil {
			return err
		}

		if pd.setter, err = b.newAccessor(cls, pd, pi.Setter); err != nil {
			return err
		}

		if err := b.addAttributes(pd, pd.attributes, pi.Attributes); err != nil {
			return err
		}

		if err := cb.properties.Add(pi.Name, pd); err != nil {
			return authoring("add property", pd.FullName(), err)
		}
	}

	for i := range cb.info.Events {
		ei := &cb.info.Events[i]
		ed := &EventDefinition{
			MemberDefinitionBase: newMemberBase(b.lc, ei.Name, cls, cls, ei.Override),
			info:                 ei,
		}

		var err error
		if ed.adder, err = b.newAccessor(cls, ed, ei.Adder); err != nil {
			return err
		}

		if ed.remover, err = b.newAccessor(cls, ed, ei.Remover); err != nil {
			return err
		}

		if err := b.addAttributes(ed, ed.attributes, ei.Attributes); err != nil {
			return err
		}

		if err := cb.events.Add(ei.Name, ed); err != nil {
			return authoring("add event", ed.FullName(), err)
		}
	}

	return nil
}

func (b *builder) newMethod(cls ClassDefinition, owner Node, mi analyze.MethodInfo) (*MethodDefinition, error) {
	md := &MethodDefinition{
		MemberDefinitionBase: newMemberBase(b.lc, mi.Name, cls, owner, mi.Override),
		info:                 &mi,
	}

	if err := b.addAttributes(md, md.attributes, mi.Attributes); err != nil {
		return nil, err
	}

	return md, nil
}

func (b *builder) newAccessor(cls ClassDefinition, owner MemberDefinition, mi *analyze.MethodInfo) (*MethodDefinition, error) {
	if mi == nil {
		return nil, nil
	}

	acc := *mi
	acc.Override = analyze.OverrideNone

	return b.newMethod(cls, owner, acc)
}

// settleInterfaceIntroductions decides the interface introductions again in
// MixinIndex order. The declaration-order outcome of the mixins phase only
// feeds the ordering.
func (b *builder) settleInterfaceIntroductions() error {
	b.target.introducedInterfaces = newUnique[analyze.TypeID, *InterfaceIntroduction](b.lc, nil)

	for m := range b.target.mixins.All() {
		if err := b.introduceInterfaces(m); err != nil {
			return err
		}
	}

	return nil
}

// introduceInterfaces decides which interfaces of m reach the target, given
// the mixins introduced before it. Explicit suppression wins over shadowing
// by the target or an earlier mixin.
func (b *builder) introduceInterfaces(m *MixinDefinition) error {
	m.interfaceIntroductions = newUnique[analyze.TypeID, *InterfaceIntroduction](b.lc, nil)
	m.nonInterfaceIntroductions = newUnique[analyze.TypeID, *NonInterfaceIntroduction](b.lc, nil)

	suppressed := make(map[analyze.TypeID]bool)

	for _, ad := range m.attributes.Get(analyze.AttrNonIntroduced) {
		suppressed[analyze.ResolveTypeRef(m.Type().PkgPath, ad.info.Arg(0))] = true
	}

	t := b.target

	for _, iface := range m.interfaces {
		if analyze.IsInfrastructure(iface) {
			continue
		}

		var err error

		switch {
		case suppressed[iface]:
			err = m.nonInterfaceIntroductions.Add(iface, &NonInterfaceIntroduction{
				iface: iface, implementer: m, explicit: true,
			})
		case b.graph.AssignableTo(t.Type(), iface):
			err = m.nonInterfaceIntroductions.Add(iface, &NonInterfaceIntroduction{
				iface: iface, implementer: m, shadowedBy: t,
			})
		case t.introducedInterfaces.Contains(iface):
			prior, _ := t.introducedInterfaces.Get(iface)
			err = m.nonInterfaceIntroductions.Add(iface, &NonInterfaceIntroduction{
				iface: iface, implementer: m, shadowedBy: prior.implementer,
			})
		default:
			intro := &InterfaceIntroduction{iface: iface, implementer: m}
			if err = m.interfaceIntroductions.Add(iface, intro); err == nil {
				err = t.introducedInterfaces.Add(iface, intro)
			}
		}

		if err != nil {
			return authoring("introduce interface", m.FullName()+":"+iface.Short(), err)
		}
	}

	return nil
}
