package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Severities(t *testing.T) {
	var l Log

	assert.True(t, l.IsValid())
	assert.NoError(t, l.Error())

	l.AddInfo("interface_shadowed", "shadowed", "shop.Order", "shop.Order+B")
	l.AddWarning("target_sealed_with_overrides", "sealed", "shop.Order", "")
	assert.True(t, l.IsValid(), "infos and warnings do not invalidate")

	l.AddError("dependency_unsatisfied", "no implementer", "shop.Order", "shop.Order+A").
		WithSuggestions("shop.INotify")
	assert.False(t, l.IsValid())
	assert.True(t, l.HasErrors())

	require.Error(t, l.Error())
	assert.Equal(t,
		"[shop.Order] shop.Order+A: [dependency_unsatisfied] no implementer (did you mean shop.INotify?)",
		l.Error().Error())
	assert.Equal(t, "1 errors, 1 warnings, 1 infos", l.Summary())
}

func TestLog_Unexpected(t *testing.T) {
	var l Log

	l.AddUnexpected("boom", "shop.Order", "shop.Order.Rename")

	assert.True(t, l.HasErrors())
	require.Len(t, l.Unexpected, 1)
	assert.Equal(t, SeverityUnexpected, l.Unexpected[0].Severity)
	assert.Equal(t, CodeUnexpected, l.Unexpected[0].Code)
	assert.Contains(t, l.Error().Error(), "boom")
	assert.Contains(t, l.Summary(), "1 unexpected")
}

func TestLog_MergeAndByCode(t *testing.T) {
	var a, b Log

	a.AddError("x", "first", "", "")
	b.AddError("x", "second", "", "")
	b.AddInfo("y", "info", "", "")
	b.AddUnexpected("panic", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Unexpected, 1)
	assert.Len(t, a.ByCode("x"), 2)
	assert.Len(t, a.ByCode("y"), 1)
	assert.Empty(t, a.ByCode("z"))
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Message: "plain"}, "plain"},
		{Diagnostic{Code: "c", Message: "m"}, "[c] m"},
		{Diagnostic{Code: "c", Message: "m", Path: "p"}, "p: [c] m"},
		{Diagnostic{Code: "c", Message: "m", Target: "t", Path: "p"}, "[t] p: [c] m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unexpected", SeverityUnexpected.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
