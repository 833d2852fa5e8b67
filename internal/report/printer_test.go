package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
)

func tid(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: "test/shop", Name: name}
}

func buildShop(t *testing.T) *definition.TargetClassDefinition {
	t.Helper()

	g := analyze.NewTypeGraph()
	notify := &analyze.TypeInfo{ID: tid("INotify"), Kind: analyze.TypeKindInterface}
	notify.Methods = []analyze.MethodInfo{{Name: "Notify", Declaring: notify.ID}}
	g.Add(notify)
	g.Add(&analyze.TypeInfo{ID: tid("ITargetBase"), Kind: analyze.TypeKindInterface})
	g.Add(&analyze.TypeInfo{ID: tid("Target"), Kind: analyze.TypeKindClass})

	m1 := &analyze.TypeInfo{ID: tid("M1"), Kind: analyze.TypeKindClass, Interfaces: []analyze.TypeID{tid("INotify")}}
	m1.Methods = []analyze.MethodInfo{{Name: "Notify", Declaring: m1.ID}}
	m1.Requires.Base = []analyze.TypeID{tid("ITargetBase")}
	g.Add(m1)
	g.Add(&analyze.TypeInfo{ID: tid("M2"), Kind: analyze.TypeKindClass})

	def, err := definition.Build(g, classcontext.New(tid("Target"),
		classcontext.WithMixin(tid("M2"), classcontext.DependsOn(tid("M1"))),
		classcontext.WithMixin(tid("M1")),
	))
	require.NoError(t, err)

	return def
}

func TestSummarize(t *testing.T) {
	s := Summarize(buildShop(t))

	assert.Equal(t, "shop.Target", s.Target)
	require.Len(t, s.Mixins, 2)
	assert.Equal(t, "shop.M1", s.Mixins[0].Type)
	assert.Equal(t, "shop.M2", s.Mixins[1].Type)

	require.Len(t, s.Mixins[0].Dependencies, 1)
	assert.Equal(t, "shop.ITargetBase", s.Mixins[0].Dependencies[0].Required)
	assert.Empty(t, s.Mixins[0].Dependencies[0].Implementer)

	require.Len(t, s.Mixins[1].Dependencies, 1)
	assert.Equal(t, "shop.M1", s.Mixins[1].Dependencies[0].Implementer)

	assert.Equal(t, []IntroductionSummary{{Type: "shop.INotify", From: "shop.M1"}}, s.IntroducedInterfaces)
	assert.Empty(t, s.OrderingCycle)
}

func TestPrinter_Definition(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Definition(buildShop(t))

	out := buf.String()
	assert.Contains(t, out, "shop.Target (2 mixins)")
	assert.Contains(t, out, "0 shop.M1 [extending]")
	assert.Contains(t, out, "shop.ITargetBase -> unsatisfied")
	assert.Contains(t, out, "shop.M1 -> shop.M1")
	assert.Contains(t, out, "introduces shop.INotify from shop.M1")
	assert.NotContains(t, out, "\x1b[", "no styling for non-terminals")
}

func TestPrinter_Log(t *testing.T) {
	log := &diagnostic.Log{}
	log.AddError("dependency_unsatisfied", "no implementer", "shop.Target", "shop.Target+shop.A").
		WithSuggestions("shop.INotify")
	log.AddInfo("attribute_shadowed", "shadowed", "shop.Target", "")

	var buf bytes.Buffer
	NewPrinter(&buf).Log(log)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "error")
	assert.Contains(t, string(lines[0]), "did you mean shop.INotify?")
	assert.Contains(t, string(lines[1]), "info")
	assert.Contains(t, string(lines[2]), "invalid 1 errors, 0 warnings, 1 infos")
}

func TestPrinter_Dump(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Dump(buildShop(t))

	out := buf.String()
	assert.Contains(t, out, "report.Summary")
	assert.Contains(t, out, `Target: (string) (len=11) "shop.Target"`)
}
