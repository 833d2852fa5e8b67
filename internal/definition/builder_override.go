package definition

import (
	"mixin-composer/internal/analyze"
)

// wireOverrides links mixin members marked to override the target, then
// target members marked to override a mixin. Mixins are processed by
// MixinIndex.
func (b *builder) wireOverrides() error {
	t := b.target

	for m := range t.mixins.All() {
		for mm := range m.Members() {
			if mm.OverrideKind() != analyze.OverrideTarget {
				continue
			}

			if base := findOverridable(t, mm); base != nil {
				if err := base.AddOverride(mm); err != nil {
					return err
				}
			}
		}
	}

	for tm := range t.Members() {
		if tm.OverrideKind() != analyze.OverrideMixin {
			continue
		}

		for m := range t.mixins.All() {
			if base := findOverridable(m, tm); base != nil {
				if err := base.AddOverride(tm); err != nil {
					return err
				}

				break
			}
		}
	}

	return nil
}

// findOverridable finds the member of cls that overrider targets: the member
// of the same kind and name, preferring an exact signature match. A name
// match with a different signature is returned so AddOverride reports it.
func findOverridable(cls ClassDefinition, overrider MemberDefinition) MemberDefinition {
	switch o := overrider.(type) {
	case *MethodDefinition:
		if exact, ok := cls.Methods().Get(o.Signature()); ok {
			return exact
		}

		for md := range cls.Methods().All() {
			if md.Name() == o.Name() {
				return md
			}
		}
	case *PropertyDefinition:
		if p, ok := cls.Properties().Get(o.Name()); ok {
			return p
		}
	case *EventDefinition:
		if e, ok := cls.Events().Get(o.Name()); ok {
			return e
		}
	}

	return nil
}
