package analyze

import (
	"sort"

	"mixin-composer/internal/common"
)

// TypeGraph holds all reflected types. It is read-only once built and safe
// for concurrent readers.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all known types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Types defined in this package
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// Add registers a type and its package. An existing entry is replaced.
func (g *TypeGraph) Add(info *TypeInfo) {
	if _, exists := g.Types[info.ID]; !exists {
		pkg, ok := g.Packages[info.ID.PkgPath]
		if !ok {
			pkg = &PackageInfo{Path: info.ID.PkgPath, Name: common.PkgAlias(info.ID.PkgPath)}
			g.Packages[info.ID.PkgPath] = pkg
		}

		pkg.Types = append(pkg.Types, info.ID)
	}

	g.Types[info.ID] = info
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// IDs returns all type IDs sorted by name.
func (g *TypeGraph) IDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	return ids
}

// IsInterface returns true if the type is a known interface.
func (g *TypeGraph) IsInterface(id TypeID) bool {
	t := g.Types[id]
	return t != nil && t.IsInterface()
}

// AssignableTo reports whether a value of type from can be used where to is
// expected: identity, base-class chain, declared interfaces and interface
// extension, all transitively.
func (g *TypeGraph) AssignableTo(from, to TypeID) bool {
	if from == to {
		return true
	}

	found := false

	g.walkSupertypes(from, func(id TypeID) bool {
		if id == to {
			found = true
			return false
		}

		return true
	})

	return found
}

// AllInterfaces returns every interface the type implements or extends,
// breadth first in declaration order, excluding the type itself.
func (g *TypeGraph) AllInterfaces(id TypeID) []TypeID {
	var result []TypeID

	g.walkSupertypes(id, func(super TypeID) bool {
		if g.IsInterface(super) {
			result = append(result, super)
		}

		return true
	})

	return result
}

// walkSupertypes visits every supertype of id once, breadth first.
// The visitor returns false to stop.
func (g *TypeGraph) walkSupertypes(id TypeID, visit func(TypeID) bool) {
	seen := map[TypeID]bool{id: true}
	queue := []TypeID{id}

	for len(queue) > 0 {
		cur := g.Types[queue[0]]
		queue = queue[1:]

		if cur == nil {
			continue
		}

		next := make([]TypeID, 0, len(cur.Interfaces)+1)
		if !cur.Base.IsZero() {
			next = append(next, cur.Base)
		}

		next = append(next, cur.Interfaces...)

		for _, n := range next {
			if seen[n] {
				continue
			}

			seen[n] = true
			if !visit(n) {
				return
			}

			queue = append(queue, n)
		}
	}
}

// AllMethods returns the methods of a type including inherited ones. For a
// class the base chain is walked; for an interface the extended interfaces.
// A derived method hides a base method with the same signature.
func (g *TypeGraph) AllMethods(id TypeID) []MethodInfo {
	var result []MethodInfo

	seen := make(map[string]bool)
	add := func(t *TypeInfo) {
		for _, m := range t.Methods {
			key := m.Signature()
			if seen[key] {
				continue
			}

			seen[key] = true
			result = append(result, m)
		}
	}

	t := g.Types[id]
	if t == nil {
		return nil
	}

	add(t)

	g.walkSupertypes(id, func(super TypeID) bool {
		st := g.Types[super]
		if st == nil {
			return true
		}

		if t.IsInterface() == st.IsInterface() {
			add(st)
		}

		return true
	})

	return result
}

// FindMethod looks up a method by name and exact signature, including
// inherited methods.
func (g *TypeGraph) FindMethod(id TypeID, name string, params []TypeID, result TypeID) (MethodInfo, bool) {
	want := name + SignatureShape(params, result)
	for _, m := range g.AllMethods(id) {
		if m.Signature() == want {
			return m, true
		}
	}

	return MethodInfo{}, false
}

// IsEmptyInterface reports whether id is an interface declaring no members of
// its own. Extended interfaces are not counted.
func (g *TypeGraph) IsEmptyInterface(id TypeID) bool {
	t := g.Types[id]
	if t == nil || !t.IsInterface() {
		return false
	}

	return len(t.Methods) == 0 && len(t.Properties) == 0 && len(t.Events) == 0
}

// IsAggregatorInterface reports whether id is an empty interface that extends
// at least one other interface.
func (g *TypeGraph) IsAggregatorInterface(id TypeID) bool {
	return g.IsEmptyInterface(id) && len(g.Types[id].Interfaces) > 0
}

// AttributeUsage returns the usage of an attribute type. Unknown attribute
// types are single-use and inheritable.
func (g *TypeGraph) AttributeUsage(id TypeID) AttributeUsage {
	if t := g.Types[id]; t != nil {
		return t.Usage
	}

	return AttributeUsage{}
}
