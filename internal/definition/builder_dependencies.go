package definition

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

func (b *builder) addDependencies(m *MixinDefinition, mc classcontext.MixinContext) error {
	groups := []struct {
		kind dependencyKind
		ids  []analyze.TypeID
	}{
		{thisKind, m.info.Requires.This},
		{baseKind, m.info.Requires.Base},
		{mixinKind, mc.ExplicitDependencies},
	}

	for _, grp := range groups {
		for _, id := range grp.ids {
			if _, err := b.addDependency(m, id, grp.kind, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// addDependency creates a dependency of m on id and expands it when id is an
// aggregator interface. aggregator is nil for declared dependencies.
func (b *builder) addDependency(m *MixinDefinition, id analyze.TypeID, kind dependencyKind,
	aggregator Dependency) (Dependency, error) {
	if _, err := b.lookup(id); err != nil {
		return nil, err
	}

	req, err := b.requirement(id, kind)
	if err != nil {
		return nil, err
	}

	base := newDependencyBase(b.lc, m, req, aggregator, kind)

	var d Dependency

	switch kind {
	case thisKind:
		td := &ThisDependency{DependencyDefinitionBase: base}
		d = td

		if aggregator == nil {
			err = m.thisDependencies.Add(id, td)
		}
	case baseKind:
		bd := &BaseDependency{DependencyDefinitionBase: base}
		d = bd

		if aggregator == nil {
			err = m.baseDependencies.Add(id, bd)
		}
	default:
		md := &MixinDependency{DependencyDefinitionBase: base}
		d = md

		if aggregator == nil {
			err = m.mixinDependencies.Add(id, md)
		}
	}

	if err != nil {
		return nil, authoring("add dependency", d.FullName(), err)
	}

	if aggregator != nil {
		if err := aggregator.AggregatedDependencies().Add(id, d); err != nil {
			return nil, authoring("expand aggregator", aggregator.FullName(),
				fmt.Errorf("%w: %s", ErrDuplicateAggregation, id))
		}
	}

	if err := req.RequiringDependencies().Add(d, d); err != nil {
		return nil, authoring("add dependency", d.FullName(), err)
	}

	if b.graph.IsAggregatorInterface(id) {
		for _, ext := range b.graph.GetType(id).Interfaces {
			if expandsTo(d, ext) {
				return nil, authoring("expand aggregator", d.FullName(),
					fmt.Errorf("%w: %s extends itself", ErrDuplicateAggregation, ext))
			}

			if _, err := b.addDependency(m, ext, kind, d); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// expandsTo reports whether id is already required by d or one of its
// aggregators.
func expandsTo(d Dependency, id analyze.TypeID) bool {
	for cur := d; cur != nil; cur = cur.Aggregator() {
		if cur.RequiredType().Type() == id {
			return true
		}
	}

	return false
}

// requirement returns the requirement of the given kind for id, creating it
// on first use.
func (b *builder) requirement(id analyze.TypeID, kind dependencyKind) (RequirementDefinition, error) {
	t := b.target

	var err error

	switch kind {
	case thisKind:
		if r, ok := t.requiredTargetCallTypes.Get(id); ok {
			return r, nil
		}

		r := &RequiredTargetCallType{RequirementDefinitionBase: newRequirementBase(b.lc, t, id, kind)}
		if err = t.requiredTargetCallTypes.Add(id, r); err == nil {
			return r, nil
		}
	case baseKind:
		if r, ok := t.requiredNextCallTypes.Get(id); ok {
			return r, nil
		}

		r := &RequiredNextCallType{RequirementDefinitionBase: newRequirementBase(b.lc, t, id, kind)}
		if err = t.requiredNextCallTypes.Add(id, r); err == nil {
			return r, nil
		}
	default:
		if r, ok := t.requiredMixinTypes.Get(id); ok {
			return r, nil
		}

		r := &RequiredMixinType{RequirementDefinitionBase: newRequirementBase(b.lc, t, id, kind)}
		if err = t.requiredMixinTypes.Add(id, r); err == nil {
			return r, nil
		}
	}

	return nil, authoring("add requirement", id.String(), err)
}

// composeInterfaces turns the composed interfaces of the class context into
// face requirements.
func (b *builder) composeInterfaces() error {
	for _, id := range b.cc.ComposedInterfaces {
		if _, err := b.lookup(id); err != nil {
			return err
		}

		req, err := b.requirement(id, thisKind)
		if err != nil {
			return err
		}

		req.(*RequiredTargetCallType).composed = true
	}

	return nil
}

// mapRequiredMethods maps every method of every required interface to the
// method implementing it on the resolved implementer.
func (b *builder) mapRequiredMethods() error {
	for r := range b.target.Requirements() {
		if !b.graph.IsInterface(r.Type()) {
			continue
		}

		impl := r.Implementer()

		for _, im := range b.graph.AllMethods(r.Type()) {
			rm := &RequiredMethod{requirement: r, info: im}

			if impl != nil {
				rm.implementing, _ = impl.Methods().Get(im.Signature())
			}

			if err := r.RequiredMethods().Add(im.Signature(), rm); err != nil {
				return authoring("add required method", rm.FullName(), err)
			}
		}
	}

	return nil
}
