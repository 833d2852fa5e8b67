package manifest

import (
	"fmt"
	"go/types"
	"strings"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

// Resolve resolves a type reference written in the given package.
func Resolve(pkgPath, ref string) analyze.TypeID {
	ref = strings.TrimSpace(ref)

	if rest, ok := strings.CutPrefix(ref, "*"); ok {
		id := Resolve(pkgPath, rest)
		id.Name = "*" + id.Name

		return id
	}

	if isBuiltin(ref) {
		return analyze.TypeID{Name: ref}
	}

	return analyze.ResolveTypeRef(pkgPath, ref)
}

// isBuiltin reports predeclared types and composite literals, which have no
// package.
func isBuiltin(ref string) bool {
	if strings.ContainsAny(ref, "[]() ") {
		return true
	}

	if strings.Contains(ref, ".") {
		return false
	}

	_, ok := types.Universe.Lookup(ref).(*types.TypeName)

	return ok
}

// ID returns the identifier of a declared type.
func (td *TypeDecl) ID() analyze.TypeID {
	return analyze.TypeID{PkgPath: td.Package, Name: td.Name}
}

func (td *TypeDecl) ref(s string) analyze.TypeID {
	return Resolve(td.Package, s)
}

func (td *TypeDecl) refs(ss []string) []analyze.TypeID {
	if len(ss) == 0 {
		return nil
	}

	ids := make([]analyze.TypeID, len(ss))
	for i, s := range ss {
		ids[i] = td.ref(s)
	}

	return ids
}

// TypeGraph builds a type graph from the declared types. Unknown kind,
// usage or override names are errors; run Validate first for a full report.
func (f *File) TypeGraph() (*analyze.TypeGraph, error) {
	g := analyze.NewTypeGraph()
	if err := f.AddTo(g); err != nil {
		return nil, err
	}

	return g, nil
}

// AddTo adds the declared types to an existing graph, e.g. one loaded from
// Go sources. Declared types replace existing entries with the same ID.
func (f *File) AddTo(g *analyze.TypeGraph) error {
	for i := range f.Types {
		info, err := f.Types[i].typeInfo()
		if err != nil {
			return fmt.Errorf("type %s: %w", f.Types[i].ID(), err)
		}

		g.Add(info)
	}

	return nil
}

func (td *TypeDecl) typeInfo() (*analyze.TypeInfo, error) {
	info := &analyze.TypeInfo{
		ID:         td.ID(),
		Interfaces: td.refs(td.Implements),
		Sealed:     td.Sealed,
		Attributes: td.attributes(td.Attributes),
		Requires: analyze.MixinRequirements{
			This: td.refs(td.Requires.This),
			Base: td.refs(td.Requires.Base),
		},
	}

	switch td.Kind {
	case KindClass:
		info.Kind = analyze.TypeKindClass
	case KindInterface:
		info.Kind = analyze.TypeKindInterface
	default:
		return nil, fmt.Errorf("unknown kind %q", td.Kind)
	}

	if td.Base != "" {
		info.Base = td.ref(td.Base)
	}

	for _, u := range td.Usage {
		switch u {
		case UsageMultiple:
			info.Usage.AllowMultiple = true
		case UsageNonInherit:
			info.Usage.NonInheritable = true
		default:
			return nil, fmt.Errorf("unknown usage flag %q", u)
		}
	}

	for _, md := range td.Methods {
		override, err := overrideKind(md.Override)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", md.Name, err)
		}

		m := analyze.MethodInfo{
			Name:       md.Name,
			Params:     td.refs(md.Params),
			Declaring:  info.ID,
			Attributes: td.attributes(md.Attributes),
			Override:   override,
		}

		if md.Result != "" {
			m.Result = td.ref(md.Result)
		}

		info.Methods = append(info.Methods, m)
	}

	for _, pd := range td.Properties {
		p, err := td.property(pd)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", pd.Name, err)
		}

		info.Properties = append(info.Properties, p)
	}

	for _, ed := range td.Events {
		e, err := td.event(ed)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ed.Name, err)
		}

		info.Events = append(info.Events, e)
	}

	return info, nil
}

func (td *TypeDecl) property(pd PropertyDecl) (analyze.PropertyInfo, error) {
	override, err := overrideKind(pd.Override)
	if err != nil {
		return analyze.PropertyInfo{}, err
	}

	id := td.ID()
	typ := td.ref(pd.Type)
	p := analyze.PropertyInfo{
		Name:       pd.Name,
		Type:       typ,
		Declaring:  id,
		Attributes: td.attributes(pd.Attributes),
		Override:   override,
	}

	both := !pd.Get && !pd.Set
	if pd.Get || both {
		p.Getter = &analyze.MethodInfo{Name: "Get" + pd.Name, Result: typ, Declaring: id, Override: override}
	}

	if pd.Set || both {
		p.Setter = &analyze.MethodInfo{
			Name: "Set" + pd.Name, Params: []analyze.TypeID{typ}, Declaring: id, Override: override,
		}
	}

	return p, nil
}

func (td *TypeDecl) event(ed EventDecl) (analyze.EventInfo, error) {
	override, err := overrideKind(ed.Override)
	if err != nil {
		return analyze.EventInfo{}, err
	}

	id := td.ID()
	handler := td.ref(ed.Handler)
	params := []analyze.TypeID{handler}

	return analyze.EventInfo{
		Name:       ed.Name,
		Handler:    handler,
		Adder:      &analyze.MethodInfo{Name: "Add" + ed.Name, Params: params, Declaring: id, Override: override},
		Remover:    &analyze.MethodInfo{Name: "Remove" + ed.Name, Params: params, Declaring: id, Override: override},
		Declaring:  id,
		Attributes: td.attributes(ed.Attributes),
		Override:   override,
	}, nil
}

func (td *TypeDecl) attributes(decls []AttributeDecl) []analyze.AttributeInfo {
	if len(decls) == 0 {
		return nil
	}

	attrs := make([]analyze.AttributeInfo, len(decls))
	for i, ad := range decls {
		attrs[i] = analyze.AttributeInfo{Type: td.ref(ad.Type), Args: append([]string(nil), ad.Args...)}
	}

	return attrs
}

func overrideKind(s string) (analyze.OverrideKind, error) {
	switch s {
	case "":
		return analyze.OverrideNone, nil
	case OverrideTarget:
		return analyze.OverrideTarget, nil
	case OverrideMixin:
		return analyze.OverrideMixin, nil
	default:
		return analyze.OverrideNone, fmt.Errorf("unknown override kind %q", s)
	}
}

// ClassContexts returns the compositions as class contexts, in file order.
func (f *File) ClassContexts() ([]classcontext.ClassContext, error) {
	result := make([]classcontext.ClassContext, 0, len(f.Compositions))

	for i := range f.Compositions {
		cc, err := f.Compositions[i].classContext(f.Package)
		if err != nil {
			return nil, fmt.Errorf("composition %s: %w", f.Compositions[i].Target, err)
		}

		result = append(result, cc)
	}

	return result, nil
}

func (c *Composition) classContext(pkgPath string) (classcontext.ClassContext, error) {
	opts := make([]classcontext.Option, 0, len(c.Mixins)+1)

	for _, md := range c.Mixins {
		var mopts []classcontext.MixinOption

		switch md.Kind {
		case "", MixinExtending:
		case MixinUsed:
			mopts = append(mopts, classcontext.Used())
		default:
			return classcontext.ClassContext{}, fmt.Errorf("mixin %s: unknown kind %q", md.Type, md.Kind)
		}

		for _, dep := range md.DependsOn {
			mopts = append(mopts, classcontext.DependsOn(Resolve(pkgPath, dep)))
		}

		if md.Alphabetic {
			mopts = append(mopts, classcontext.AlphabeticOrdering())
		}

		opts = append(opts, classcontext.WithMixin(Resolve(pkgPath, md.Type), mopts...))
	}

	for _, ci := range c.ComposedInterfaces {
		opts = append(opts, classcontext.WithComposedInterface(Resolve(pkgPath, ci)))
	}

	cc := classcontext.New(Resolve(pkgPath, c.Target), opts...)

	return cc, cc.Validate()
}
