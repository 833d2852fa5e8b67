package validation

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
)

// VisitTargetClass implements definition.Visitor.
func (v *Validator) VisitTargetClass(t *definition.TargetClassDefinition) error {
	return v.check(t, func() {
		if t.Info().IsInterface() {
			v.log.AddError(CodeTargetIsInterface,
				fmt.Sprintf("target must be a class, got %s", analyze.TypeString(t.Info())), v.targetName, t.FullName())
		}

		if cycle := t.OrderingCycle(); len(cycle) > 0 {
			v.log.AddError(CodeMixinOrderCycle,
				fmt.Sprintf("mixins depend on each other and cannot be ordered: %s", analyze.IDList(cycle)),
				v.targetName, t.FullName())
		}
	})
}

// VisitMixin implements definition.Visitor.
func (v *Validator) VisitMixin(m *definition.MixinDefinition) error {
	return v.check(m, func() {
		if m.Info().IsInterface() {
			v.log.AddError(CodeMixinIsInterface,
				fmt.Sprintf("mixin must be a class, got %s", analyze.TypeString(m.Info())), v.targetName, m.FullName())
		}
	})
}

// VisitMethod implements definition.Visitor.
func (v *Validator) VisitMethod(m *definition.MethodDefinition) error {
	return v.check(m, func() { v.member(m) })
}

// VisitProperty implements definition.Visitor.
func (v *Validator) VisitProperty(p *definition.PropertyDefinition) error {
	return v.check(p, func() { v.member(p) })
}

// VisitEvent implements definition.Visitor.
func (v *Validator) VisitEvent(e *definition.EventDefinition) error {
	return v.check(e, func() { v.member(e) })
}

func (v *Validator) member(m definition.MemberDefinition) {
	if m.OverrideKind() != analyze.OverrideNone && m.Base() == nil {
		side := "target"
		if m.OverrideKind() == analyze.OverrideMixin {
			side = "any mixin"
		}

		v.log.AddError(CodeOverrideWithoutBase,
			fmt.Sprintf("%s is marked to override a member of %s, but none matches", m.Name(), side),
			v.targetName, m.FullName())
	}

	if t, ok := m.DeclaringClass().(*definition.TargetClassDefinition); ok &&
		t.Info().Sealed && m.Overrides().Len() > 0 {
		v.log.AddWarning(CodeTargetSealedWithOverrides,
			fmt.Sprintf("sealed target member %s is overridden by %d mixin member(s)", m.Name(), m.Overrides().Len()),
			v.targetName, m.FullName())
	}
}

// VisitAttribute implements definition.Visitor.
func (v *Validator) VisitAttribute(a *definition.AttributeDefinition) error {
	return v.check(a, func() {
		if a.Usage().AllowMultiple {
			return
		}

		var siblings []*definition.AttributeDefinition

		switch d := a.DeclaringNode().(type) {
		case definition.ClassDefinition:
			siblings = d.Attributes().Get(a.Type())
		case definition.MemberDefinition:
			siblings = d.Attributes().Get(a.Type())
		}

		// Report once, on the second occurrence.
		if len(siblings) > 1 && siblings[1] == a {
			v.log.AddError(CodeAttributeMultiplicity,
				fmt.Sprintf("attribute %s is applied %d times but does not allow multiple use",
					a.Type().Short(), len(siblings)),
				v.targetName, a.DeclaringNode().FullName())
		}
	})
}

// VisitRequiredTargetCallType implements definition.Visitor.
func (v *Validator) VisitRequiredTargetCallType(r *definition.RequiredTargetCallType) error {
	return v.check(r, func() {
		if r.IsComposedInterface() && r.Implementer() == nil {
			v.log.AddError(CodeComposedInterfaceUnsatisfied,
				fmt.Sprintf("composed interface %s is implemented by neither the target nor a mixin", r.Type().Short()),
				v.targetName, r.FullName()).WithSuggestions(v.suggest(r.Type())...)
		}
	})
}

// VisitRequiredNextCallType implements definition.Visitor.
func (v *Validator) VisitRequiredNextCallType(r *definition.RequiredNextCallType) error {
	return v.check(r, func() {})
}

// VisitRequiredMixinType implements definition.Visitor.
func (v *Validator) VisitRequiredMixinType(r *definition.RequiredMixinType) error {
	return v.check(r, func() {})
}

// VisitRequiredMethod implements definition.Visitor.
func (v *Validator) VisitRequiredMethod(m *definition.RequiredMethod) error {
	return v.check(m, func() {
		impl := m.Requirement().Implementer()
		if impl == nil || m.ImplementingMethod() != nil {
			return
		}

		im := m.InterfaceMethod()
		v.log.AddError(CodeRequiredMethodMissing,
			fmt.Sprintf("%s resolves %s but has no method %s",
				impl.Type().Short(), m.Requirement().Type().Short(), im.Signature()),
			v.targetName, m.FullName())
	})
}

// VisitThisDependency implements definition.Visitor.
func (v *Validator) VisitThisDependency(d *definition.ThisDependency) error {
	return v.check(d, func() { v.dependency(d, "this") })
}

// VisitBaseDependency implements definition.Visitor.
func (v *Validator) VisitBaseDependency(d *definition.BaseDependency) error {
	return v.check(d, func() { v.dependency(d, "base") })
}

// VisitMixinDependency implements definition.Visitor.
func (v *Validator) VisitMixinDependency(d *definition.MixinDependency) error {
	return v.check(d, func() { v.dependency(d, "mixin") })
}

// dependency reports unsatisfied leaves. Aggregates are judged through their
// expanded dependencies, which are visited separately.
func (v *Validator) dependency(d definition.Dependency, kind string) {
	if d.IsAggregate() || d.GetImplementer() != nil {
		return
	}

	required := d.RequiredType().Type()
	msg := fmt.Sprintf("mixin %s has a %s dependency on %s, which is implemented by neither the target nor a mixin",
		d.Depender().Type().Short(), kind, required.Short())

	if agg := d.Aggregator(); agg != nil {
		msg += fmt.Sprintf(" (required through %s)", agg.RequiredType().Type().Short())
	}

	v.log.AddError(CodeDependencyUnsatisfied, msg, v.targetName, d.FullName()).
		WithSuggestions(v.suggest(required)...)
}

// VisitInterfaceIntroduction implements definition.Visitor.
func (v *Validator) VisitInterfaceIntroduction(i *definition.InterfaceIntroduction) error {
	return v.check(i, func() {})
}

// VisitNonInterfaceIntroduction implements definition.Visitor.
func (v *Validator) VisitNonInterfaceIntroduction(i *definition.NonInterfaceIntroduction) error {
	return v.check(i, func() {
		reason := "it is suppressed explicitly"
		if i.IsShadowed() {
			reason = "it is already provided by " + i.ShadowedBy().Type().Short()
		}

		v.info(CodeInterfaceNotIntroduced,
			fmt.Sprintf("%s does not introduce %s: %s", i.Implementer().Type().Short(), i.InterfaceType().Short(), reason),
			i)
	})
}

// VisitAttributeIntroduction implements definition.Visitor.
func (v *Validator) VisitAttributeIntroduction(i *definition.AttributeIntroduction) error {
	return v.check(i, func() {})
}

// VisitNonAttributeIntroduction implements definition.Visitor.
func (v *Validator) VisitNonAttributeIntroduction(i *definition.NonAttributeIntroduction) error {
	return v.check(i, func() {
		v.info(CodeAttributeShadowed,
			fmt.Sprintf("attribute %s is shadowed by %s", i.AttributeType().Short(), i.ShadowedBy().FullName()),
			i)
	})
}

// VisitSuppressedAttributeIntroduction implements definition.Visitor.
func (v *Validator) VisitSuppressedAttributeIntroduction(i *definition.SuppressedAttributeIntroduction) error {
	return v.check(i, func() {
		v.info(CodeAttributeSuppressed,
			fmt.Sprintf("attribute %s is suppressed by %s", i.AttributeType().Short(), i.Suppressor().FullName()),
			i)
	})
}

func (v *Validator) info(code, msg string, n definition.Node) *diagnostic.Diagnostic {
	return v.log.AddInfo(code, msg, v.targetName, n.FullName())
}
