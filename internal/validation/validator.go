package validation

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
	"mixin-composer/internal/match"
)

// Rule codes.
const (
	CodeDependencyUnsatisfied        = "dependency_unsatisfied"
	CodeComposedInterfaceUnsatisfied = "composed_interface_unsatisfied"
	CodeRequiredMethodMissing        = "required_method_missing"
	CodeMixinOrderCycle              = "mixin_order_cycle"
	CodeOverrideWithoutBase          = "override_without_base"
	CodeAttributeMultiplicity        = "attribute_multiplicity"
	CodeMixinIsInterface             = "mixin_is_interface"
	CodeTargetIsInterface            = "target_is_interface"
	CodeTargetSealedWithOverrides    = "target_sealed_with_overrides"
	CodeInterfaceNotIntroduced       = "interface_not_introduced"
	CodeAttributeShadowed            = "attribute_shadowed"
	CodeAttributeSuppressed          = "attribute_suppressed"
	defaultMaxSuggestions            = 3
)

// Rule is an extra check run on every node after the built-in rules.
type Rule func(n definition.Node, log *diagnostic.Log)

// Option configures a Validator.
type Option func(*Validator)

// WithMaxSuggestions limits "did you mean" suggestions per diagnostic. Zero
// disables them.
func WithMaxSuggestions(n int) Option {
	return func(v *Validator) {
		v.maxSuggestions = n
	}
}

// WithRule adds a custom rule.
func WithRule(r Rule) Option {
	return func(v *Validator) {
		v.rules = append(v.rules, r)
	}
}

// Validator implements definition.Visitor and collects diagnostics.
type Validator struct {
	log            *diagnostic.Log
	target         *definition.TargetClassDefinition
	targetName     string
	maxSuggestions int
	rules          []Rule
}

// New creates a Validator for one target definition.
func New(target *definition.TargetClassDefinition, opts ...Option) *Validator {
	v := &Validator{
		log:            &diagnostic.Log{},
		target:         target,
		targetName:     target.Type().Short(),
		maxSuggestions: defaultMaxSuggestions,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate walks the whole definition and returns the collected log.
func Validate(target *definition.TargetClassDefinition, opts ...Option) *diagnostic.Log {
	v := New(target, opts...)
	v.Run()

	return v.log
}

// Run walks the definition. Visit methods never return errors, so the walk
// always covers the whole graph.
func (v *Validator) Run() {
	_ = definition.Walk(v.target, v)
}

// Log returns the collected diagnostics.
func (v *Validator) Log() *diagnostic.Log {
	return v.log
}

// check runs fn and the custom rules for n, recording panics as unexpected
// entries.
func (v *Validator) check(n definition.Node, fn func()) error {
	v.guard(n, fn)

	for _, r := range v.rules {
		v.guard(n, func() { r(n, v.log) })
	}

	return nil
}

func (v *Validator) guard(n definition.Node, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			v.log.AddUnexpected(fmt.Sprintf("%s: %v", n.Kind(), r), v.targetName, n.FullName())
		}
	}()

	fn()
}

func (v *Validator) suggest(id analyze.TypeID) []string {
	if v.maxSuggestions <= 0 {
		return nil
	}

	g := v.target.Graph()

	var candidates []string

	for _, other := range g.IDs() {
		if other != id && g.IsInterface(other) && !analyze.IsInfrastructure(other) {
			candidates = append(candidates, other.Short())
		}
	}

	return match.Suggest(id.Short(), candidates, v.maxSuggestions)
}
