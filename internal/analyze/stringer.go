package analyze

import (
	"strings"
)

// MemberPath builds a readable path for a member inside a composition.
// Examples:
//   - "Customer" for a type
//   - "Customer.Rename" for a member
//   - "Customer+NotifyMixin.Notify" for a mixin member seen from a target
type MemberPath struct {
	parts []string
}

// NewMemberPath creates a new MemberPath from a root type name.
func NewMemberPath(root string) *MemberPath {
	return &MemberPath{
		parts: []string{root},
	}
}

// Member appends a member name to the path.
func (p *MemberPath) Member(name string) *MemberPath {
	return &MemberPath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Mixin qualifies the last element with a mixin name.
func (p *MemberPath) Mixin(name string) *MemberPath {
	if len(p.parts) == 0 {
		return &MemberPath{parts: []string{"+" + name}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "+" + name

	return &MemberPath{parts: newParts}
}

// String returns the full path string.
func (p *MemberPath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString returns a human-readable description of a TypeInfo.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	return t.Kind.String() + " " + t.ID.Short()
}

// IDList renders a list of TypeIDs in short form.
func IDList(ids []TypeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.Short()
	}

	return strings.Join(parts, ", ")
}
