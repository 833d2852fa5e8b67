package classcontext

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/common"
)

var (
	// ErrEmptyTarget is returned when a context has no target type.
	ErrEmptyTarget = errors.New("class context has no target")
	// ErrDuplicateMixin is returned when the same mixin type appears twice.
	ErrDuplicateMixin = errors.New("duplicate mixin")
	// ErrMixinIsTarget is returned when a mixin is the target itself.
	ErrMixinIsTarget = errors.New("mixin is the target type")
)

// MixinKind distinguishes the structural role of a mixin.
type MixinKind int

const (
	// MixinKindExtending mixins are declared on the mixin side ("extends target").
	MixinKindExtending MixinKind = iota
	// MixinKindUsed mixins are declared on the target side ("uses mixin").
	MixinKindUsed
)

// String returns a human-readable representation of the MixinKind.
func (k MixinKind) String() string {
	switch k {
	case MixinKindExtending:
		return "extending"
	case MixinKindUsed:
		return "used"
	default:
		return common.UnknownStr
	}
}

// MixinContext is one mixin of a composition request.
type MixinContext struct {
	Type analyze.TypeID
	Kind MixinKind
	// ExplicitDependencies are mixin types (or interfaces) this mixin must
	// be applied after.
	ExplicitDependencies []analyze.TypeID
	// AcceptsAlphabeticOrdering allows ordering by name when dependencies do
	// not decide the position.
	AcceptsAlphabeticOrdering bool
}

func (m MixinContext) key() string {
	deps := sortedStrings(m.ExplicitDependencies)

	alpha := ""
	if m.AcceptsAlphabeticOrdering {
		alpha = ";alpha"
	}

	return fmt.Sprintf("%s[%s;%s%s]", m.Type, m.Kind, strings.Join(deps, ","), alpha)
}

// ClassContext is a composition request.
type ClassContext struct {
	Target             analyze.TypeID
	Mixins             []MixinContext
	ComposedInterfaces []analyze.TypeID
}

// Option configures a ClassContext built by New.
type Option func(*ClassContext)

// MixinOption configures a MixinContext added by WithMixin.
type MixinOption func(*MixinContext)

// New creates a ClassContext for target.
func New(target analyze.TypeID, opts ...Option) ClassContext {
	cc := ClassContext{Target: target}
	for _, opt := range opts {
		opt(&cc)
	}

	return cc
}

// WithMixin appends a mixin. Mixin order is significant.
func WithMixin(mixin analyze.TypeID, opts ...MixinOption) Option {
	return func(cc *ClassContext) {
		mc := MixinContext{Type: mixin}
		for _, opt := range opts {
			opt(&mc)
		}

		cc.Mixins = append(cc.Mixins, mc)
	}
}

// WithComposedInterface adds interfaces the composed object must expose.
func WithComposedInterface(ifaces ...analyze.TypeID) Option {
	return func(cc *ClassContext) {
		cc.ComposedInterfaces = append(cc.ComposedInterfaces, ifaces...)
	}
}

// Used marks the mixin as declared on the target side.
func Used() MixinOption {
	return func(mc *MixinContext) {
		mc.Kind = MixinKindUsed
	}
}

// DependsOn adds explicit ordering dependencies.
func DependsOn(deps ...analyze.TypeID) MixinOption {
	return func(mc *MixinContext) {
		mc.ExplicitDependencies = append(mc.ExplicitDependencies, deps...)
	}
}

// AlphabeticOrdering opts the mixin into alphabetic tie-breaking.
func AlphabeticOrdering() MixinOption {
	return func(mc *MixinContext) {
		mc.AcceptsAlphabeticOrdering = true
	}
}

// Key returns a canonical string. Two contexts with the same key are equal:
// mixin order is significant, the order of composed interfaces and explicit
// dependencies is not.
func (c ClassContext) Key() string {
	var b strings.Builder

	b.WriteString(c.Target.String())
	b.WriteString("|")

	for i, m := range c.Mixins {
		if i > 0 {
			b.WriteString(",")
		}

		b.WriteString(m.key())
	}

	b.WriteString("|")
	b.WriteString(strings.Join(sortedStrings(c.ComposedInterfaces), ","))

	return b.String()
}

// Equal reports value equality.
func (c ClassContext) Equal(other ClassContext) bool {
	return c.Key() == other.Key()
}

// String returns a short description for logs.
func (c ClassContext) String() string {
	names := make([]string, len(c.Mixins))
	for i, m := range c.Mixins {
		names[i] = m.Type.Short()
	}

	return fmt.Sprintf("%s+[%s]", c.Target.Short(), strings.Join(names, ", "))
}

// Mixin returns the context of a mixin type.
func (c ClassContext) Mixin(id analyze.TypeID) (MixinContext, bool) {
	for _, m := range c.Mixins {
		if m.Type == id {
			return m, true
		}
	}

	return MixinContext{}, false
}

// Validate checks the request itself, independently of any type graph.
func (c ClassContext) Validate() error {
	if c.Target.IsZero() {
		return ErrEmptyTarget
	}

	seen := make(map[analyze.TypeID]bool, len(c.Mixins))
	for _, m := range c.Mixins {
		if m.Type == c.Target {
			return fmt.Errorf("%w: %s", ErrMixinIsTarget, m.Type)
		}

		if seen[m.Type] {
			return fmt.Errorf("%w: %s", ErrDuplicateMixin, m.Type)
		}

		seen[m.Type] = true
	}

	return nil
}

func sortedStrings(ids []analyze.TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	slices.Sort(out)

	return slices.Compact(out)
}
