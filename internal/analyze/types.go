package analyze

import (
	"go/types"
	"strings"

	"mixin-composer/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "mixin-composer/examples/notify"
	Name    string // e.g., "Customer"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the TypeID qualified by the package alias only.
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// IsZero reports whether the TypeID is unset.
func (t TypeID) IsZero() bool {
	return t.PkgPath == "" && t.Name == ""
}

// Less orders TypeIDs by their full string form.
func (t TypeID) Less(other TypeID) bool {
	return t.String() < other.String()
}

// ParseTypeID parses "path/to/pkg.Name" into a TypeID.
// The package path ends at the last dot that follows the last slash.
func ParseTypeID(s string) TypeID {
	s = strings.TrimSpace(s)
	slash := strings.LastIndex(s, "/")

	dot := strings.LastIndex(s[slash+1:], ".")
	if dot < 0 {
		return TypeID{Name: s}
	}

	dot += slash + 1

	return TypeID{PkgPath: s[:dot], Name: s[dot+1:]}
}

// TypeKind represents the kind of a reflected type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindClass              // concrete type with members
	TypeKindInterface          // interface type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// OverrideKind marks a member as overriding a member of the other side of a
// composition.
type OverrideKind int

const (
	OverrideNone   OverrideKind = iota
	OverrideTarget              // mixin member overrides a target member
	OverrideMixin               // target member overrides a mixin member
)

// String returns a human-readable representation of the OverrideKind.
func (k OverrideKind) String() string {
	switch k {
	case OverrideNone:
		return "none"
	case OverrideTarget:
		return "target"
	case OverrideMixin:
		return "mixin"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a class or interface in the type graph.
type TypeInfo struct {
	ID   TypeID
	Kind TypeKind
	// Base is the base class of a class; zero when there is none.
	Base TypeID
	// Interfaces are the declared interfaces of a class, or the extended
	// interfaces of an interface.
	Interfaces []TypeID
	Methods    []MethodInfo
	Properties []PropertyInfo
	Events     []EventInfo
	Attributes []AttributeInfo
	// Usage applies when the type is itself used as an attribute.
	Usage AttributeUsage
	// Requires lists the requirements of a mixin class.
	Requires MixinRequirements
	// Sealed classes cannot have their members overridden by mixins.
	Sealed bool
	// GoType is the original go/types.Type when loaded from source.
	GoType types.Type
}

// IsInterface returns true for interface types.
func (t *TypeInfo) IsInterface() bool {
	return t.Kind == TypeKindInterface
}

// HasAttribute returns true if the type carries an attribute of the given type.
func (t *TypeInfo) HasAttribute(id TypeID) bool {
	return hasAttribute(t.Attributes, id)
}

// MixinRequirements are the requirement types a mixin class declares.
type MixinRequirements struct {
	// This lists interfaces the mixin expects the composed object to implement.
	This []TypeID
	// Base lists interfaces the mixin calls on the next element of the chain.
	Base []TypeID
}

// AttributeUsage controls how an attribute type composes.
type AttributeUsage struct {
	AllowMultiple  bool
	NonInheritable bool
}

// AttributeInfo is a custom attribute applied to a type or member.
type AttributeInfo struct {
	Type TypeID
	Args []string
}

// Arg returns the i-th argument or an empty string.
func (a AttributeInfo) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}

	return a.Args[i]
}

// String renders the attribute as Type(args...).
func (a AttributeInfo) String() string {
	return a.Type.Short() + "(" + strings.Join(a.Args, ", ") + ")"
}

func hasAttribute(attrs []AttributeInfo, id TypeID) bool {
	for _, a := range attrs {
		if a.Type == id {
			return true
		}
	}

	return false
}

// MethodInfo describes a method.
type MethodInfo struct {
	Name       string
	Params     []TypeID
	Result     TypeID // zero for no result
	Declaring  TypeID
	Attributes []AttributeInfo
	Override   OverrideKind
}

// FullName returns the declaring type and method name.
func (m *MethodInfo) FullName() string {
	return m.Declaring.String() + "." + m.Name
}

// Signature renders Name(P1, P2) R.
func (m *MethodInfo) Signature() string {
	return m.Name + SignatureShape(m.Params, m.Result)
}

// SignatureShape renders the parameter list and result without a name.
func SignatureShape(params []TypeID, result TypeID) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}

	s := "(" + strings.Join(parts, ", ") + ")"
	if !result.IsZero() {
		s += " " + result.String()
	}

	return s
}

// PropertyInfo describes a property made of a getter and/or a setter.
type PropertyInfo struct {
	Name       string
	Type       TypeID
	Getter     *MethodInfo
	Setter     *MethodInfo
	Declaring  TypeID
	Attributes []AttributeInfo
	Override   OverrideKind
}

// FullName returns the declaring type and property name.
func (p *PropertyInfo) FullName() string {
	return p.Declaring.String() + "." + p.Name
}

// EventInfo describes an event made of an add and a remove accessor.
type EventInfo struct {
	Name       string
	Handler    TypeID
	Adder      *MethodInfo
	Remover    *MethodInfo
	Declaring  TypeID
	Attributes []AttributeInfo
	Override   OverrideKind
}

// FullName returns the declaring type and event name.
func (e *EventInfo) FullName() string {
	return e.Declaring.String() + "." + e.Name
}
