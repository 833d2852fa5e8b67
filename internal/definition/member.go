package definition

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/match"
)

var signatures match.SignatureChecker

// MemberDefinition is a method, property or event of a class definition.
type MemberDefinition interface {
	Node
	Name() string
	DeclaringClass() ClassDefinition
	// Base returns the member this one overrides, or nil.
	Base() MemberDefinition
	// Overrides returns the members overriding this one, keyed by the type of
	// their declaring class.
	Overrides() *MultiCollection[analyze.TypeID, MemberDefinition]
	OverrideKind() analyze.OverrideKind
	Attributes() *MultiCollection[analyze.TypeID, *AttributeDefinition]
	// IntroducedAttributes returns attributes received from overriding mixin
	// members.
	IntroducedAttributes() *MultiCollection[analyze.TypeID, *AttributeIntroduction]
	CanBeOverriddenBy(other MemberDefinition) bool
	AddOverride(other MemberDefinition) error

	memberBase() *MemberDefinitionBase
}

// MemberDefinitionBase is the storage shared by all member kinds.
type MemberDefinitionBase struct {
	attributeIntroducer

	name         string
	declaring    ClassDefinition
	owner        Node // declaring class, or the property/event of an accessor
	base         MemberDefinition
	overrides    *MultiCollection[analyze.TypeID, MemberDefinition]
	overrideKind analyze.OverrideKind
	attributes   *MultiCollection[analyze.TypeID, *AttributeDefinition]
	introduced   *MultiCollection[analyze.TypeID, *AttributeIntroduction]
}

func newMemberBase(lc *lifecycle, name string, declaring ClassDefinition, owner Node,
	kind analyze.OverrideKind) MemberDefinitionBase {
	return MemberDefinitionBase{
		attributeIntroducer: newAttributeIntroducer(lc),
		name:                name,
		declaring:           declaring,
		owner:               owner,
		overrides:           newMulti[analyze.TypeID, MemberDefinition](lc),
		overrideKind:        kind,
		attributes:          newMulti[analyze.TypeID, *AttributeDefinition](lc),
		introduced:          newMulti[analyze.TypeID, *AttributeIntroduction](lc),
	}
}

// Name returns the member name.
func (m *MemberDefinitionBase) Name() string { return m.name }

// DeclaringClass returns the class definition owning the member.
func (m *MemberDefinitionBase) DeclaringClass() ClassDefinition { return m.declaring }

// Parent implements Node.
func (m *MemberDefinitionBase) Parent() Node { return m.owner }

// Base returns the overridden member, or nil.
func (m *MemberDefinitionBase) Base() MemberDefinition { return m.base }

// Overrides returns the overriding members keyed by declaring class type.
func (m *MemberDefinitionBase) Overrides() *MultiCollection[analyze.TypeID, MemberDefinition] {
	return m.overrides
}

// OverrideKind returns the override marker of the reflected member.
func (m *MemberDefinitionBase) OverrideKind() analyze.OverrideKind { return m.overrideKind }

// Attributes returns the attributes declared on the member.
func (m *MemberDefinitionBase) Attributes() *MultiCollection[analyze.TypeID, *AttributeDefinition] {
	return m.attributes
}

// IntroducedAttributes returns attributes received from overriding members.
func (m *MemberDefinitionBase) IntroducedAttributes() *MultiCollection[analyze.TypeID, *AttributeIntroduction] {
	return m.introduced
}

func (m *MemberDefinitionBase) memberBase() *MemberDefinitionBase { return m }

func (m *MemberDefinitionBase) path() *analyze.MemberPath {
	switch owner := m.owner.(type) {
	case *TargetClassDefinition:
		return owner.path().Member(m.name)
	case *MixinDefinition:
		return owner.path().Member(m.name)
	case MemberDefinition:
		return owner.memberBase().path().Member(m.name)
	default:
		return analyze.NewMemberPath(m.name)
	}
}

// FullName implements Node.
func (m *MemberDefinitionBase) FullName() string { return m.path().String() }

// link registers overrider as an override of self.
func link(self, overrider MemberDefinition) error {
	ob := overrider.memberBase()
	if ob.base != nil {
		return fmt.Errorf("%w: %s already overrides %s", ErrOverrideMismatch, overrider.FullName(), ob.base.FullName())
	}

	if err := self.memberBase().overrides.Add(overrider.DeclaringClass().Type(), overrider); err != nil {
		return err
	}

	ob.base = self

	return nil
}

func mismatch(base, overrider MemberDefinition, reason string) error {
	return &AuthoringError{
		Op:      "add override",
		Subject: base.FullName(),
		Err:     fmt.Errorf("%w: %s cannot override it: %s", ErrOverrideMismatch, overrider.FullName(), reason),
	}
}

// MethodDefinition is a method member.
type MethodDefinition struct {
	MemberDefinitionBase

	info *analyze.MethodInfo
}

// Kind implements Node.
func (m *MethodDefinition) Kind() NodeKind { return KindMethod }

// Info returns the reflected method.
func (m *MethodDefinition) Info() *analyze.MethodInfo { return m.info }

// Signature returns the method name and shape.
func (m *MethodDefinition) Signature() string { return m.info.Signature() }

// CanBeOverriddenBy reports whether other is a method with a compatible
// signature.
func (m *MethodDefinition) CanBeOverriddenBy(other MemberDefinition) bool {
	om, ok := other.(*MethodDefinition)
	return ok && signatures.MethodsMatch(m.info, om.info).Compatible
}

// AddOverride registers other as an override of m and sets its Base.
func (m *MethodDefinition) AddOverride(other MemberDefinition) error {
	om, ok := other.(*MethodDefinition)
	if !ok {
		return mismatch(m, other, "not a method")
	}

	if r := signatures.MethodsMatch(m.info, om.info); !r.Compatible {
		return mismatch(m, other, r.Reason)
	}

	if err := link(m, om); err != nil {
		return authoring("add override", m.FullName(), err)
	}

	return nil
}

func (m *MethodDefinition) accept(v Visitor) error { return v.VisitMethod(m) }

// PropertyDefinition is a property member with up to two accessor methods.
type PropertyDefinition struct {
	MemberDefinitionBase

	info   *analyze.PropertyInfo
	getter *MethodDefinition
	setter *MethodDefinition
}

// Kind implements Node.
func (p *PropertyDefinition) Kind() NodeKind { return KindProperty }

// Info returns the reflected property.
func (p *PropertyDefinition) Info() *analyze.PropertyInfo { return p.info }

// Getter returns the get accessor, or nil.
func (p *PropertyDefinition) Getter() *MethodDefinition { return p.getter }

// Setter returns the set accessor, or nil.
func (p *PropertyDefinition) Setter() *MethodDefinition { return p.setter }

// CanBeOverriddenBy reports whether other is a property whose type and
// accessors are compatible.
func (p *PropertyDefinition) CanBeOverriddenBy(other MemberDefinition) bool {
	op, ok := other.(*PropertyDefinition)
	return ok && signatures.PropertiesMatch(p.info, op.info).Compatible
}

// AddOverride registers other as an override of p. Accessors are linked in
// lock-step with the property.
func (p *PropertyDefinition) AddOverride(other MemberDefinition) error {
	op, ok := other.(*PropertyDefinition)
	if !ok {
		return mismatch(p, other, "not a property")
	}

	if r := signatures.PropertiesMatch(p.info, op.info); !r.Compatible {
		return mismatch(p, other, r.Reason)
	}

	if err := link(p, op); err != nil {
		return authoring("add override", p.FullName(), err)
	}

	return linkAccessors(p.getter, op.getter, p.setter, op.setter)
}

func (p *PropertyDefinition) accept(v Visitor) error { return v.VisitProperty(p) }

// EventDefinition is an event member with add and remove accessors.
type EventDefinition struct {
	MemberDefinitionBase

	info    *analyze.EventInfo
	adder   *MethodDefinition
	remover *MethodDefinition
}

// Kind implements Node.
func (e *EventDefinition) Kind() NodeKind { return KindEvent }

// Info returns the reflected event.
func (e *EventDefinition) Info() *analyze.EventInfo { return e.info }

// Adder returns the add accessor, or nil.
func (e *EventDefinition) Adder() *MethodDefinition { return e.adder }

// Remover returns the remove accessor, or nil.
func (e *EventDefinition) Remover() *MethodDefinition { return e.remover }

// CanBeOverriddenBy reports whether other is an event whose handler and
// accessors are compatible.
func (e *EventDefinition) CanBeOverriddenBy(other MemberDefinition) bool {
	oe, ok := other.(*EventDefinition)
	return ok && signatures.EventsMatch(e.info, oe.info).Compatible
}

// AddOverride registers other as an override of e. Accessors are linked in
// lock-step with the event.
func (e *EventDefinition) AddOverride(other MemberDefinition) error {
	oe, ok := other.(*EventDefinition)
	if !ok {
		return mismatch(e, other, "not an event")
	}

	if r := signatures.EventsMatch(e.info, oe.info); !r.Compatible {
		return mismatch(e, other, r.Reason)
	}

	if err := link(e, oe); err != nil {
		return authoring("add override", e.FullName(), err)
	}

	return linkAccessors(e.adder, oe.adder, e.remover, oe.remover)
}

func (e *EventDefinition) accept(v Visitor) error { return v.VisitEvent(e) }

// linkAccessors takes base/overrider pairs.
func linkAccessors(pairs ...*MethodDefinition) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		base, over := pairs[i], pairs[i+1]
		if base == nil || over == nil {
			continue
		}

		if err := base.AddOverride(over); err != nil {
			return err
		}
	}

	return nil
}
