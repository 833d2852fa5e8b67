package manifest

import (
	"fmt"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/diagnostic"
	"mixin-composer/internal/match"
)

const supportedVersion = "1"

// Validate checks a manifest for structural problems: unknown type
// references, duplicate declarations and unknown enum names. Types may also
// come from graph (e.g. loaded from Go sources), which can be nil.
func Validate(f *File, graph *analyze.TypeGraph) *diagnostic.Log {
	res := &diagnostic.Log{}
	if f == nil {
		res.AddError("manifest_is_nil", "manifest is nil", "", "")
		return res
	}

	if f.Version != supportedVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported manifest version %q", f.Version), "", "version")
	}

	v := &validator{res: res, known: make(map[analyze.TypeID]bool)}

	if graph != nil {
		for id := range graph.Types {
			v.known[id] = true
		}
	}

	declared := make(map[analyze.TypeID]bool)

	for i := range f.Types {
		td := &f.Types[i]
		if td.Name == "" {
			res.AddError("type_name_missing", fmt.Sprintf("type #%d has no name", i+1), "", fmt.Sprintf("types[%d]", i))
			continue
		}

		if declared[td.ID()] {
			res.AddError("duplicate_type", fmt.Sprintf("type %s is declared twice", td.ID()), "", td.ID().String())
			continue
		}

		declared[td.ID()] = true
		v.known[td.ID()] = true
	}

	for i := range f.Types {
		if f.Types[i].Name != "" {
			v.typeDecl(&f.Types[i])
		}
	}

	seen := make(map[string]int)

	for i := range f.Compositions {
		c := &f.Compositions[i]
		v.composition(f.Package, c)

		if cc, err := c.classContext(f.Package); err == nil {
			if prev, dup := seen[cc.Key()]; dup {
				res.AddWarning("duplicate_composition",
					fmt.Sprintf("composition #%d repeats composition #%d", i+1, prev+1), c.Target, "")
			} else {
				seen[cc.Key()] = i
			}
		}
	}

	return res
}

type validator struct {
	res   *diagnostic.Log
	known map[analyze.TypeID]bool
}

func (v *validator) typeDecl(td *TypeDecl) {
	target := td.ID().String()

	if td.Kind != KindClass && td.Kind != KindInterface {
		v.res.AddError("unknown_kind", fmt.Sprintf("unknown kind %q", td.Kind), target, "kind")
	}

	for _, u := range td.Usage {
		if u != UsageMultiple && u != UsageNonInherit {
			v.res.AddError("unknown_usage", fmt.Sprintf("unknown usage flag %q", u), target, "usage")
		}
	}

	if td.Base != "" {
		v.ref(td.Package, td.Base, target, "base")
	}

	for _, s := range td.Implements {
		v.ref(td.Package, s, target, "implements")
	}

	for _, s := range td.Requires.This {
		v.ref(td.Package, s, target, "requires.this")
	}

	for _, s := range td.Requires.Base {
		v.ref(td.Package, s, target, "requires.base")
	}

	v.attributes(td.Package, td.Attributes, target, "attributes")

	for _, md := range td.Methods {
		path := "methods." + md.Name
		v.override(md.Override, target, path)
		v.attributes(td.Package, md.Attributes, target, path)
	}

	for _, pd := range td.Properties {
		path := "properties." + pd.Name
		v.override(pd.Override, target, path)
		v.attributes(td.Package, pd.Attributes, target, path)
	}

	for _, ed := range td.Events {
		path := "events." + ed.Name
		v.override(ed.Override, target, path)
		v.attributes(td.Package, ed.Attributes, target, path)
	}
}

func (v *validator) composition(pkgPath string, c *Composition) {
	if c.Target == "" {
		v.res.AddError("target_missing", "composition has no target", "", "target")
		return
	}

	target := c.Target
	v.ref(pkgPath, c.Target, target, "target")

	mixins := make(map[analyze.TypeID]bool)

	for _, md := range c.Mixins {
		path := "mixins." + md.Type
		id := v.ref(pkgPath, md.Type, target, path)

		if mixins[id] {
			v.res.AddError("duplicate_mixin", fmt.Sprintf("mixin %s is listed twice", md.Type), target, path)
		}

		mixins[id] = true

		if md.Kind != "" && md.Kind != MixinExtending && md.Kind != MixinUsed {
			v.res.AddError("unknown_mixin_kind", fmt.Sprintf("unknown mixin kind %q", md.Kind), target, path)
		}

		for _, dep := range md.DependsOn {
			v.ref(pkgPath, dep, target, path+".depends_on")
		}
	}

	for _, ci := range c.ComposedInterfaces {
		v.ref(pkgPath, ci, target, "composed_interfaces")
	}
}

func (v *validator) attributes(pkgPath string, attrs []AttributeDecl, target, path string) {
	for _, ad := range attrs {
		v.ref(pkgPath, ad.Type, target, path)
	}
}

func (v *validator) override(s, target, path string) {
	if _, err := overrideKind(s); err != nil {
		v.res.AddError("unknown_override", err.Error(), target, path)
	}
}

// ref resolves a reference and reports it when no such type is known.
func (v *validator) ref(pkgPath, s, target, path string) analyze.TypeID {
	id := Resolve(pkgPath, s)
	if v.known[id] || analyze.IsInfrastructure(id) {
		return id
	}

	candidates := make([]string, 0, len(v.known))
	for k := range v.known {
		candidates = append(candidates, k.Short())
	}

	v.res.AddError("unknown_type", fmt.Sprintf("type %q (%s) is not declared", s, id), target, path).
		WithSuggestions(match.Suggest(id.Short(), candidates, 3)...)

	return id
}
