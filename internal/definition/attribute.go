package definition

import (
	"mixin-composer/internal/analyze"
)

// AttributeDefinition is a custom attribute applied to a class or member.
type AttributeDefinition struct {
	info     analyze.AttributeInfo
	usage    analyze.AttributeUsage
	declarer Node
}

// Kind implements Node.
func (a *AttributeDefinition) Kind() NodeKind { return KindAttribute }

// Parent implements Node.
func (a *AttributeDefinition) Parent() Node { return a.declarer }

// FullName implements Node.
func (a *AttributeDefinition) FullName() string {
	return a.declarer.FullName() + "@" + a.info.Type.Short()
}

// Type returns the attribute type.
func (a *AttributeDefinition) Type() analyze.TypeID { return a.info.Type }

// Info returns the reflected attribute.
func (a *AttributeDefinition) Info() analyze.AttributeInfo { return a.info }

// Usage returns the multiplicity and inheritance rules of the attribute type.
func (a *AttributeDefinition) Usage() analyze.AttributeUsage { return a.usage }

// DeclaringNode returns the class or member the attribute is applied to.
func (a *AttributeDefinition) DeclaringNode() Node { return a.declarer }

// DeclaringClass returns the class the attribute belongs to, directly or
// through a member.
func (a *AttributeDefinition) DeclaringClass() ClassDefinition {
	switch d := a.declarer.(type) {
	case ClassDefinition:
		return d
	case MemberDefinition:
		return d.DeclaringClass()
	default:
		return nil
	}
}

// IsInfrastructure reports whether the attribute is interpreted by the
// engine itself and never introduced.
func (a *AttributeDefinition) IsInfrastructure() bool {
	return analyze.IsInfrastructure(a.info.Type)
}

// IsIntroducible reports whether the attribute is a candidate for
// introduction onto the target.
func (a *AttributeDefinition) IsIntroducible() bool {
	return !a.IsInfrastructure() && !a.usage.NonInheritable
}

func (a *AttributeDefinition) accept(v Visitor) error { return v.VisitAttribute(a) }
