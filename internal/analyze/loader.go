package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
//
// Named structs become classes and named interfaces become interfaces. Go has
// no nominal implementation, so a class is recorded as implementing every
// loaded non-empty interface its pointer type satisfies; empty (marker)
// interfaces must be named with a //mixin:implements directive.
type Analyzer struct {
	graph *TypeGraph
	named map[TypeID]*types.Named
	// directives collected from doc comments, keyed by type and by "Type.Method".
	typeDirectives   map[TypeID][]directive
	methodDirectives map[TypeID]map[string][]directive
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:            NewTypeGraph(),
		named:            make(map[TypeID]*types.Named),
		typeDirectives:   make(map[TypeID][]directive),
		methodDirectives: make(map[TypeID]map[string][]directive),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/notify").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.collectDirectives(pkg)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	a.linkImplementations()

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts classes and interfaces from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		var info *TypeInfo

		switch ut := named.Underlying().(type) {
		case *types.Struct:
			var err error
			if info, err = a.analyzeClass(id, named, ut); err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
		case *types.Interface:
			info = a.analyzeInterface(id, ut)
		default:
			continue
		}

		info.GoType = named
		if err := a.applyTypeDirectives(info); err != nil {
			return fmt.Errorf("type %s: %w", id, err)
		}

		a.named[id] = named
		a.graph.Add(info)
	}

	if p := a.graph.Packages[pkg.PkgPath]; p != nil {
		p.Name = pkg.Name
	}

	return nil
}

// analyzeClass builds a class from a named struct. The first embedded named
// struct field is treated as the base class.
func (a *Analyzer) analyzeClass(id TypeID, named *types.Named, st *types.Struct) (*TypeInfo, error) {
	info := &TypeInfo{ID: id, Kind: TypeKindClass}

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if !field.Embedded() {
			continue
		}

		if fn, ok := types.Unalias(field.Type()).(*types.Named); ok {
			if _, isStruct := fn.Underlying().(*types.Struct); isStruct {
				info.Base = typeIDOf(fn)
				break
			}
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if !fn.Exported() {
			continue
		}

		m := methodFromFunc(id, fn)
		if err := a.applyMethodDirectives(id, &m); err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}

		info.Methods = append(info.Methods, m)
	}

	return info, nil
}

// analyzeInterface builds an interface from its explicit methods and
// embedded interfaces.
func (a *Analyzer) analyzeInterface(id TypeID, iface *types.Interface) *TypeInfo {
	info := &TypeInfo{ID: id, Kind: TypeKindInterface}

	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if en, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named); ok {
			info.Interfaces = append(info.Interfaces, typeIDOf(en))
		}
	}

	for i := 0; i < iface.NumExplicitMethods(); i++ {
		fn := iface.ExplicitMethod(i)
		if fn.Exported() {
			info.Methods = append(info.Methods, methodFromFunc(id, fn))
		}
	}

	return info
}

// linkImplementations records, for every class, the loaded non-empty
// interfaces its pointer type satisfies.
func (a *Analyzer) linkImplementations() {
	ifaces := make([]TypeID, 0)

	for _, id := range a.graph.IDs() {
		if a.graph.IsInterface(id) && !a.graph.IsEmptyInterface(id) {
			ifaces = append(ifaces, id)
		}
	}

	for _, id := range a.graph.IDs() {
		info := a.graph.Types[id]
		if info.IsInterface() {
			continue
		}

		ptr := types.NewPointer(a.named[id])
		for _, ifaceID := range ifaces {
			it, ok := a.named[ifaceID].Underlying().(*types.Interface)
			if !ok || containsID(info.Interfaces, ifaceID) {
				continue
			}

			if types.Implements(ptr, it) {
				info.Interfaces = append(info.Interfaces, ifaceID)
			}
		}
	}
}

func methodFromFunc(declaring TypeID, fn *types.Func) MethodInfo {
	sig, _ := fn.Type().(*types.Signature)
	m := MethodInfo{Name: fn.Name(), Declaring: declaring}

	if sig == nil {
		return m
	}

	for i := 0; i < sig.Params().Len(); i++ {
		m.Params = append(m.Params, typeIDOf(sig.Params().At(i).Type()))
	}

	switch sig.Results().Len() {
	case 0:
	case 1:
		m.Result = typeIDOf(sig.Results().At(0).Type())
	default:
		m.Result = TypeID{Name: types.TypeString(sig.Results(), nil)}
	}

	return m
}

// typeIDOf maps a go/types type to the identifier used in signatures.
func typeIDOf(t types.Type) TypeID {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return TypeID{Name: obj.Name()}
		}

		return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	case *types.Basic:
		return TypeID{Name: tt.Name()}
	case *types.Pointer:
		id := typeIDOf(tt.Elem())
		id.Name = "*" + id.Name

		return id
	default:
		return TypeID{Name: types.TypeString(t, nil)}
	}
}

// collectDirectives indexes //mixin: doc comments by type and method.
func (a *Analyzer) collectDirectives(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}

				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}

					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					id := TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}
					a.typeDirectives[id] = append(a.typeDirectives[id], parseDirectives(doc)...)
				}

			case *ast.FuncDecl:
				recv := receiverName(d)
				if recv == "" {
					continue
				}

				id := TypeID{PkgPath: pkg.PkgPath, Name: recv}
				if a.methodDirectives[id] == nil {
					a.methodDirectives[id] = make(map[string][]directive)
				}

				a.methodDirectives[id][d.Name.Name] = parseDirectives(d.Doc)
			}
		}
	}
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}

	expr := fd.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}

	return ""
}

func containsID(ids []TypeID, id TypeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}

	return false
}
