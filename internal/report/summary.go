package report

import (
	"mixin-composer/internal/analyze"
	"mixin-composer/internal/definition"
)

// Summary is a plain-data view of a definition, safe to print or dump.
type Summary struct {
	Target               string
	Mixins               []MixinSummary
	IntroducedInterfaces []IntroductionSummary
	IntroducedAttributes []IntroductionSummary
	Requirements         []RequirementSummary
	OrderingCycle        []string
}

// MixinSummary describes one mixin in application order.
type MixinSummary struct {
	Index        int
	Type         string
	Kind         string
	Dependencies []DependencySummary
	Overrides    []string
}

// DependencySummary describes one dependency and its expansion.
type DependencySummary struct {
	Kind        string
	Required    string
	Implementer string // empty when unsatisfied
	Aggregated  []DependencySummary
}

// IntroductionSummary names what a mixin introduced.
type IntroductionSummary struct {
	Type string
	From string
}

// RequirementSummary describes a required type.
type RequirementSummary struct {
	Kind           string
	Type           string
	Implementer    string
	MissingMethods []string
}

// Summarize flattens a definition.
func Summarize(def *definition.TargetClassDefinition) Summary {
	s := Summary{Target: def.Type().Short()}

	for m := range def.Mixins().All() {
		ms := MixinSummary{Index: m.MixinIndex(), Type: m.Type().Short(), Kind: m.MixinKind().String()}

		for d := range m.Dependencies() {
			ms.Dependencies = append(ms.Dependencies, summarizeDependency(d))
		}

		for member := range m.Members() {
			if b := member.Base(); b != nil {
				ms.Overrides = append(ms.Overrides, member.Name()+" -> "+b.FullName())
			}
		}

		s.Mixins = append(s.Mixins, ms)
	}

	for i := range def.IntroducedInterfaces().All() {
		s.IntroducedInterfaces = append(s.IntroducedInterfaces,
			IntroductionSummary{Type: i.InterfaceType().Short(), From: i.Implementer().Type().Short()})
	}

	for a := range def.IntroducedAttributes().All() {
		s.IntroducedAttributes = append(s.IntroducedAttributes,
			IntroductionSummary{Type: a.AttributeType().Short(), From: a.Attribute().DeclaringClass().Type().Short()})
	}

	for r := range def.Requirements() {
		rs := RequirementSummary{Kind: r.Kind().String(), Type: r.Type().Short(), Implementer: implementerName(r.Implementer())}

		for rm := range r.RequiredMethods().All() {
			if rm.ImplementingMethod() == nil {
				im := rm.InterfaceMethod()
				rs.MissingMethods = append(rs.MissingMethods, im.Signature())
			}
		}

		s.Requirements = append(s.Requirements, rs)
	}

	s.OrderingCycle = shortNames(def.OrderingCycle())

	return s
}

func summarizeDependency(d definition.Dependency) DependencySummary {
	ds := DependencySummary{
		Kind:        d.Kind().String(),
		Required:    d.RequiredType().Type().Short(),
		Implementer: implementerName(d.GetImplementer()),
	}

	for agg := range d.AggregatedDependencies().All() {
		ds.Aggregated = append(ds.Aggregated, summarizeDependency(agg))
	}

	return ds
}

func implementerName(c definition.ClassDefinition) string {
	if c == nil {
		return ""
	}

	return c.Type().Short()
}

func shortNames(ids []analyze.TypeID) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Short()
	}

	return out
}
