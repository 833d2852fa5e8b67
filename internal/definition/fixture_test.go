package definition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
)

const shopPkg = "test/shop"

func tid(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: shopPkg, Name: name}
}

func builtin(name string) analyze.TypeID {
	return analyze.TypeID{Name: name}
}

// fixture builds type graphs in code.
type fixture struct {
	g *analyze.TypeGraph
}

func newFixture() *fixture {
	return &fixture{g: analyze.NewTypeGraph()}
}

func (f *fixture) add(kind analyze.TypeKind, name string, supers ...string) *analyze.TypeInfo {
	info := &analyze.TypeInfo{ID: tid(name), Kind: kind}
	for _, s := range supers {
		info.Interfaces = append(info.Interfaces, tid(s))
	}

	f.g.Add(info)

	return info
}

func (f *fixture) iface(name string, extends ...string) *analyze.TypeInfo {
	return f.add(analyze.TypeKindInterface, name, extends...)
}

func (f *fixture) class(name string, implements ...string) *analyze.TypeInfo {
	return f.add(analyze.TypeKindClass, name, implements...)
}

// attrType declares an attribute type.
func (f *fixture) attrType(name string, usage analyze.AttributeUsage) {
	f.class(name).Usage = usage
}

func method(name string, override analyze.OverrideKind, params ...string) analyze.MethodInfo {
	m := analyze.MethodInfo{Name: name, Override: override}
	for _, p := range params {
		m.Params = append(m.Params, builtin(p))
	}

	return m
}

func withMethods(info *analyze.TypeInfo, ms ...analyze.MethodInfo) *analyze.TypeInfo {
	for _, m := range ms {
		m.Declaring = info.ID
		info.Methods = append(info.Methods, m)
	}

	return info
}

func attr(name string, args ...string) analyze.AttributeInfo {
	return analyze.AttributeInfo{Type: tid(name), Args: args}
}

func infra(attrType analyze.TypeID, args ...string) analyze.AttributeInfo {
	return analyze.AttributeInfo{Type: attrType, Args: args}
}

func mustBuild(t *testing.T, f *fixture, cc classcontext.ClassContext) *TargetClassDefinition {
	t.Helper()

	def, err := Build(f.g, cc)
	require.NoError(t, err)
	require.NotNil(t, def)

	return def
}

func mixinOf(t *testing.T, def *TargetClassDefinition, name string) *MixinDefinition {
	t.Helper()

	m, ok := def.MixinByType(tid(name))
	require.True(t, ok, "mixin %s", name)

	return m
}
