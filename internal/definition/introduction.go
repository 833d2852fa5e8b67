package definition

import (
	"mixin-composer/internal/analyze"
)

// attributeIntroducer holds the outcome of every attribute a mixin or mixin
// member contributes.
type attributeIntroducer struct {
	attributeIntroductions    *MultiCollection[analyze.TypeID, *AttributeIntroduction]
	nonAttributeIntroductions *MultiCollection[analyze.TypeID, *NonAttributeIntroduction]
	suppressedIntroductions   *MultiCollection[analyze.TypeID, *SuppressedAttributeIntroduction]
}

func newAttributeIntroducer(lc *lifecycle) attributeIntroducer {
	return attributeIntroducer{
		attributeIntroductions:    newMulti[analyze.TypeID, *AttributeIntroduction](lc),
		nonAttributeIntroductions: newMulti[analyze.TypeID, *NonAttributeIntroduction](lc),
		suppressedIntroductions:   newMulti[analyze.TypeID, *SuppressedAttributeIntroduction](lc),
	}
}

// AttributeIntroductions returns the contributed attributes that were
// introduced.
func (a *attributeIntroducer) AttributeIntroductions() *MultiCollection[analyze.TypeID, *AttributeIntroduction] {
	return a.attributeIntroductions
}

// NonAttributeIntroductions returns the contributed attributes that were
// shadowed by a higher-priority contribution.
func (a *attributeIntroducer) NonAttributeIntroductions() *MultiCollection[analyze.TypeID, *NonAttributeIntroduction] {
	return a.nonAttributeIntroductions
}

// SuppressedAttributeIntroductions returns the contributed attributes that
// were explicitly suppressed.
func (a *attributeIntroducer) SuppressedAttributeIntroductions() *MultiCollection[analyze.TypeID, *SuppressedAttributeIntroduction] {
	return a.suppressedIntroductions
}

// InterfaceIntroduction is an interface a mixin introduces onto the target.
type InterfaceIntroduction struct {
	iface       analyze.TypeID
	implementer *MixinDefinition
}

// Kind implements Node.
func (i *InterfaceIntroduction) Kind() NodeKind { return KindInterfaceIntroduction }

// Parent implements Node.
func (i *InterfaceIntroduction) Parent() Node { return i.implementer }

// FullName implements Node.
func (i *InterfaceIntroduction) FullName() string {
	return i.implementer.FullName() + ":" + i.iface.Short()
}

// InterfaceType returns the introduced interface.
func (i *InterfaceIntroduction) InterfaceType() analyze.TypeID { return i.iface }

// Implementer returns the introducing mixin.
func (i *InterfaceIntroduction) Implementer() *MixinDefinition { return i.implementer }

// TargetClass returns the receiving target.
func (i *InterfaceIntroduction) TargetClass() *TargetClassDefinition { return i.implementer.target }

func (i *InterfaceIntroduction) accept(v Visitor) error { return v.VisitInterfaceIntroduction(i) }

// NonInterfaceIntroduction is an interface a mixin implements but does not
// introduce, either because something else already provides it or because the
// mixin suppresses it.
type NonInterfaceIntroduction struct {
	iface       analyze.TypeID
	implementer *MixinDefinition
	explicit    bool
	// shadowedBy is the target or the earlier mixin providing the interface.
	shadowedBy ClassDefinition
}

// Kind implements Node.
func (n *NonInterfaceIntroduction) Kind() NodeKind { return KindNonInterfaceIntroduction }

// Parent implements Node.
func (n *NonInterfaceIntroduction) Parent() Node { return n.implementer }

// FullName implements Node.
func (n *NonInterfaceIntroduction) FullName() string {
	return n.implementer.FullName() + ":!" + n.iface.Short()
}

// InterfaceType returns the interface.
func (n *NonInterfaceIntroduction) InterfaceType() analyze.TypeID { return n.iface }

// Implementer returns the mixin implementing the interface.
func (n *NonInterfaceIntroduction) Implementer() *MixinDefinition { return n.implementer }

// IsExplicitlySuppressed reports whether the mixin suppressed the interface.
func (n *NonInterfaceIntroduction) IsExplicitlySuppressed() bool { return n.explicit }

// IsShadowed reports whether a higher-priority class already provides the
// interface.
func (n *NonInterfaceIntroduction) IsShadowed() bool { return !n.explicit }

// ShadowedBy returns the class providing the interface, or nil when
// suppressed explicitly.
func (n *NonInterfaceIntroduction) ShadowedBy() ClassDefinition { return n.shadowedBy }

func (n *NonInterfaceIntroduction) accept(v Visitor) error { return v.VisitNonInterfaceIntroduction(n) }

// AttributeIntroduction is a contributed attribute introduced onto the target
// class or onto a target member.
type AttributeIntroduction struct {
	attribute *AttributeDefinition
	target    Node
}

// Kind implements Node.
func (a *AttributeIntroduction) Kind() NodeKind { return KindAttributeIntroduction }

// Parent implements Node.
func (a *AttributeIntroduction) Parent() Node { return a.attribute.declarer }

// FullName implements Node.
func (a *AttributeIntroduction) FullName() string {
	return a.attribute.FullName() + "->" + a.target.FullName()
}

// Attribute returns the contributed attribute.
func (a *AttributeIntroduction) Attribute() *AttributeDefinition { return a.attribute }

// AttributeType returns the type of the contributed attribute.
func (a *AttributeIntroduction) AttributeType() analyze.TypeID { return a.attribute.Type() }

// Target returns the receiving target class or member.
func (a *AttributeIntroduction) Target() Node { return a.target }

func (a *AttributeIntroduction) accept(v Visitor) error { return v.VisitAttributeIntroduction(a) }

// NonAttributeIntroduction is a contributed attribute that lost to a
// higher-priority attribute of the same type.
type NonAttributeIntroduction struct {
	attribute  *AttributeDefinition
	target     Node
	shadowedBy *AttributeDefinition
}

// Kind implements Node.
func (n *NonAttributeIntroduction) Kind() NodeKind { return KindNonAttributeIntroduction }

// Parent implements Node.
func (n *NonAttributeIntroduction) Parent() Node { return n.attribute.declarer }

// FullName implements Node.
func (n *NonAttributeIntroduction) FullName() string {
	return n.attribute.FullName() + "-/>" + n.target.FullName()
}

// Attribute returns the contributed attribute.
func (n *NonAttributeIntroduction) Attribute() *AttributeDefinition { return n.attribute }

// AttributeType returns the type of the contributed attribute.
func (n *NonAttributeIntroduction) AttributeType() analyze.TypeID { return n.attribute.Type() }

// Target returns the target class or member that was not changed.
func (n *NonAttributeIntroduction) Target() Node { return n.target }

// ShadowedBy returns the attribute that claimed the type first.
func (n *NonAttributeIntroduction) ShadowedBy() *AttributeDefinition { return n.shadowedBy }

// IsShadowed is always true; explicit suppression is a
// SuppressedAttributeIntroduction.
func (n *NonAttributeIntroduction) IsShadowed() bool { return true }

// IsExplicitlySuppressed is always false.
func (n *NonAttributeIntroduction) IsExplicitlySuppressed() bool { return false }

func (n *NonAttributeIntroduction) accept(v Visitor) error { return v.VisitNonAttributeIntroduction(n) }

// SuppressedAttributeIntroduction is a contributed attribute blocked by a
// suppression declared elsewhere in the composition.
type SuppressedAttributeIntroduction struct {
	attribute  *AttributeDefinition
	target     Node
	suppressor *AttributeDefinition
}

// Kind implements Node.
func (s *SuppressedAttributeIntroduction) Kind() NodeKind { return KindSuppressedAttributeIntroduction }

// Parent implements Node.
func (s *SuppressedAttributeIntroduction) Parent() Node { return s.attribute.declarer }

// FullName implements Node.
func (s *SuppressedAttributeIntroduction) FullName() string {
	return s.attribute.FullName() + "-x>" + s.target.FullName()
}

// Attribute returns the suppressed attribute.
func (s *SuppressedAttributeIntroduction) Attribute() *AttributeDefinition { return s.attribute }

// AttributeType returns the type of the suppressed attribute.
func (s *SuppressedAttributeIntroduction) AttributeType() analyze.TypeID { return s.attribute.Type() }

// Target returns the target class or member that was not changed.
func (s *SuppressedAttributeIntroduction) Target() Node { return s.target }

// Suppressor returns the suppression attribute responsible.
func (s *SuppressedAttributeIntroduction) Suppressor() *AttributeDefinition { return s.suppressor }

// IsShadowed is always false.
func (s *SuppressedAttributeIntroduction) IsShadowed() bool { return false }

// IsExplicitlySuppressed is always true.
func (s *SuppressedAttributeIntroduction) IsExplicitlySuppressed() bool { return true }

func (s *SuppressedAttributeIntroduction) accept(v Visitor) error {
	return v.VisitSuppressedAttributeIntroduction(s)
}
