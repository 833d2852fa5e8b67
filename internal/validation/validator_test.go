package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
)

const shopPkg = "test/shop"

func tid(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: shopPkg, Name: name}
}

func add(g *analyze.TypeGraph, kind analyze.TypeKind, name string, supers ...string) *analyze.TypeInfo {
	info := &analyze.TypeInfo{ID: tid(name), Kind: kind}
	for _, s := range supers {
		info.Interfaces = append(info.Interfaces, tid(s))
	}

	g.Add(info)

	return info
}

func withMethod(info *analyze.TypeInfo, name string, override analyze.OverrideKind) *analyze.TypeInfo {
	info.Methods = append(info.Methods, analyze.MethodInfo{Name: name, Declaring: info.ID, Override: override})
	return info
}

func build(t *testing.T, g *analyze.TypeGraph, mixins ...classcontext.Option) *definition.TargetClassDefinition {
	t.Helper()

	def, err := definition.Build(g, classcontext.New(tid("Target"), mixins...))
	require.NoError(t, err)

	return def
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_UnsatisfiedEmptyInterface(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindInterface, "IEmpty")
	add(g, analyze.TypeKindClass, "Target")
	add(g, analyze.TypeKindClass, "A").Requires.This = []analyze.TypeID{tid("IEmpty")}

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))))

	require.Len(t, log.Errors, 1)
	d := log.Errors[0]
	assert.Equal(t, CodeDependencyUnsatisfied, d.Code)
	assert.Contains(t, d.Message, "shop.A")
	assert.Contains(t, d.Message, "shop.IEmpty")
	assert.Equal(t, "shop.Target", d.Target)
	assert.Empty(t, log.Unexpected)
}

func TestValidate_DuckTypedTargetIsValid(t *testing.T) {
	g := analyze.NewTypeGraph()
	withMethod(add(g, analyze.TypeKindInterface, "IFoo"), "Bar", analyze.OverrideNone)
	withMethod(add(g, analyze.TypeKindClass, "Target"), "Bar", analyze.OverrideNone)
	add(g, analyze.TypeKindClass, "A").Requires.This = []analyze.TypeID{tid("IFoo")}

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))))

	assert.True(t, log.IsValid(), log.Summary())
	assert.Empty(t, log.Errors)
}

func TestValidate_EndToEndReportsOnlyMissingBase(t *testing.T) {
	g := analyze.NewTypeGraph()
	withMethod(add(g, analyze.TypeKindInterface, "INotify"), "Notify", analyze.OverrideNone)
	add(g, analyze.TypeKindInterface, "ITargetBase")
	add(g, analyze.TypeKindClass, "Target")
	m1 := withMethod(add(g, analyze.TypeKindClass, "M1", "INotify"), "Notify", analyze.OverrideNone)
	m1.Requires.Base = []analyze.TypeID{tid("ITargetBase")}
	add(g, analyze.TypeKindClass, "M2")

	log := Validate(build(t, g,
		classcontext.WithMixin(tid("M2"), classcontext.DependsOn(tid("M1"))),
		classcontext.WithMixin(tid("M1")),
	))

	require.Len(t, log.Errors, 1)
	assert.Equal(t, CodeDependencyUnsatisfied, log.Errors[0].Code)
	assert.Contains(t, log.Errors[0].Message, "shop.M1")
	assert.Contains(t, log.Errors[0].Message, "shop.ITargetBase")
	assert.Contains(t, log.Errors[0].Message, "base dependency")
}

func TestValidate_Suggestions(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindInterface, "INotify")
	add(g, analyze.TypeKindInterface, "INotifie")
	add(g, analyze.TypeKindClass, "Target")
	add(g, analyze.TypeKindClass, "A").Requires.Base = []analyze.TypeID{tid("INotifie")}

	def := build(t, g, classcontext.WithMixin(tid("A")))

	log := Validate(def)
	require.Len(t, log.Errors, 1)
	assert.Equal(t, []string{"shop.INotify"}, log.Errors[0].Suggestions)

	log = Validate(def, WithMaxSuggestions(0))
	require.Len(t, log.Errors, 1)
	assert.Empty(t, log.Errors[0].Suggestions)
}

func TestValidate_OrderingCycle(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindClass, "Target")
	add(g, analyze.TypeKindClass, "A")
	add(g, analyze.TypeKindClass, "B")

	log := Validate(build(t, g,
		classcontext.WithMixin(tid("A"), classcontext.DependsOn(tid("B"))),
		classcontext.WithMixin(tid("B"), classcontext.DependsOn(tid("A"))),
	))

	cycles := log.ByCode(CodeMixinOrderCycle)
	require.Len(t, cycles, 1)
	assert.Contains(t, cycles[0].Message, "shop.A")
	assert.Contains(t, cycles[0].Message, "shop.B")
}

func TestValidate_OverrideWithoutBase(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindClass, "Target")
	withMethod(add(g, analyze.TypeKindClass, "A"), "Save", analyze.OverrideTarget)

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))))

	assert.Equal(t, []string{CodeOverrideWithoutBase}, codes(log.Errors))
	assert.Equal(t, "shop.Target+shop.A.Save", log.Errors[0].Path)
}

func TestValidate_SealedTargetOverridden(t *testing.T) {
	g := analyze.NewTypeGraph()
	target := withMethod(add(g, analyze.TypeKindClass, "Target"), "Save", analyze.OverrideNone)
	target.Sealed = true
	withMethod(add(g, analyze.TypeKindClass, "A"), "Save", analyze.OverrideTarget)

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))))

	assert.Empty(t, log.Errors)
	assert.Equal(t, []string{CodeTargetSealedWithOverrides}, codes(log.Warnings))
}

func TestValidate_AttributeMultiplicity(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindClass, "Once")
	add(g, analyze.TypeKindClass, "Many").Usage = analyze.AttributeUsage{AllowMultiple: true}
	add(g, analyze.TypeKindClass, "Target").Attributes = []analyze.AttributeInfo{
		{Type: tid("Once")}, {Type: tid("Once")}, {Type: tid("Once")},
		{Type: tid("Many")}, {Type: tid("Many")},
	}

	log := Validate(build(t, g))

	require.Equal(t, []string{CodeAttributeMultiplicity}, codes(log.Errors))
	assert.Contains(t, log.Errors[0].Message, "3 times")
}

func TestValidate_IntroductionInfos(t *testing.T) {
	g := analyze.NewTypeGraph()
	withMethod(add(g, analyze.TypeKindInterface, "ISave"), "Save", analyze.OverrideNone)
	add(g, analyze.TypeKindClass, "Owned")
	target := withMethod(add(g, analyze.TypeKindClass, "Target", "ISave"), "Save", analyze.OverrideNone)
	target.Attributes = []analyze.AttributeInfo{{Type: tid("Owned")}}
	a := withMethod(add(g, analyze.TypeKindClass, "A", "ISave"), "Save", analyze.OverrideNone)
	a.Attributes = []analyze.AttributeInfo{{Type: tid("Owned")}}

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))))

	assert.Empty(t, log.Errors)
	assert.ElementsMatch(t, []string{CodeInterfaceNotIntroduced, CodeAttributeShadowed}, codes(log.Infos))
}

func TestValidate_PanickingRuleIsRecorded(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindClass, "Target")
	add(g, analyze.TypeKindClass, "A")

	calls := 0
	rule := func(n definition.Node, _ *diagnostic.Log) {
		calls++

		if n.Kind() == definition.KindMixin {
			panic("boom")
		}
	}

	log := Validate(build(t, g, classcontext.WithMixin(tid("A"))), WithRule(rule))

	require.Len(t, log.Unexpected, 1)
	assert.Contains(t, log.Unexpected[0].Message, "boom")
	assert.Equal(t, "shop.Target+shop.A", log.Unexpected[0].Path)
	assert.Equal(t, 2, calls, "walk continues after the panic")
	assert.False(t, log.IsValid())
}

func TestValidate_CustomRule(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindClass, "Target")

	rule := func(n definition.Node, log *diagnostic.Log) {
		if n.Kind() == definition.KindTargetClass {
			log.AddWarning("custom", "checked", "", n.FullName())
		}
	}

	log := Validate(build(t, g), WithRule(rule))

	assert.Equal(t, []string{"custom"}, codes(log.Warnings))
}

func TestValidate_InterfacesAsClasses(t *testing.T) {
	g := analyze.NewTypeGraph()
	add(g, analyze.TypeKindInterface, "Target")
	add(g, analyze.TypeKindInterface, "IMixin")

	log := Validate(build(t, g, classcontext.WithMixin(tid("IMixin"))))

	assert.Equal(t, []string{CodeTargetIsInterface, CodeMixinIsInterface}, codes(log.Errors))
	assert.Contains(t, log.Errors[0].Message, "interface shop.Target")
}
