package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mixin-composer/internal/analyze"
)

var (
	tString = analyze.TypeID{Name: "string"}
	tInt    = analyze.TypeID{Name: "int"}
	tError  = analyze.TypeID{Name: "error"}
)

func method(name string, result analyze.TypeID, params ...analyze.TypeID) *analyze.MethodInfo {
	return &analyze.MethodInfo{Name: name, Params: params, Result: result}
}

func TestSignatureChecker_MethodsMatch(t *testing.T) {
	var c SignatureChecker

	tests := []struct {
		name string
		a, b *analyze.MethodInfo
		want bool
	}{
		{"identical", method("Notify", tError, tString), method("Notify", tError, tString), true},
		{"no params no result", method("Close", analyze.TypeID{}), method("Close", analyze.TypeID{}), true},
		{"arity", method("Notify", tError, tString), method("Notify", tError), false},
		{"param type", method("Notify", tError, tString), method("Notify", tError, tInt), false},
		{"param order", method("Set", analyze.TypeID{}, tString, tInt), method("Set", analyze.TypeID{}, tInt, tString), false},
		{"result", method("Notify", tError, tString), method("Notify", analyze.TypeID{}, tString), false},
		{"nil", method("Notify", tError), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.MethodsMatch(tt.a, tt.b)
			assert.Equal(t, tt.want, r.Compatible, r.Reason)
			assert.NotEmpty(t, r.Reason)
		})
	}
}

func TestSignatureChecker_PropertiesMatch(t *testing.T) {
	var c SignatureChecker

	base := &analyze.PropertyInfo{
		Name:   "Name",
		Type:   tString,
		Getter: method("GetName", tString),
		Setter: method("SetName", analyze.TypeID{}, tString),
	}

	getterOnly := &analyze.PropertyInfo{Name: "Name", Type: tString, Getter: method("GetName", tString)}
	assert.True(t, c.PropertiesMatch(base, getterOnly).Compatible)

	wrongType := &analyze.PropertyInfo{Name: "Name", Type: tInt, Getter: method("GetName", tInt)}
	assert.False(t, c.PropertiesMatch(base, wrongType).Compatible)

	extraSetter := &analyze.PropertyInfo{
		Name:   "Name",
		Type:   tString,
		Setter: method("SetName", analyze.TypeID{}, tString),
	}
	assert.False(t, c.PropertiesMatch(getterOnly, extraSetter).Compatible)

	badSetter := &analyze.PropertyInfo{
		Name:   "Name",
		Type:   tString,
		Setter: method("SetName", analyze.TypeID{}, tInt),
	}
	r := c.PropertiesMatch(base, badSetter)
	assert.False(t, r.Compatible)
	assert.Contains(t, r.Reason, "set accessor")
}

func TestSignatureChecker_EventsMatch(t *testing.T) {
	var c SignatureChecker

	handler := analyze.TypeID{PkgPath: "shop", Name: "Handler"}
	other := analyze.TypeID{PkgPath: "shop", Name: "OtherHandler"}

	base := &analyze.EventInfo{
		Name:    "Changed",
		Handler: handler,
		Adder:   method("AddChanged", analyze.TypeID{}, handler),
		Remover: method("RemoveChanged", analyze.TypeID{}, handler),
	}

	same := &analyze.EventInfo{
		Name:    "Changed",
		Handler: handler,
		Adder:   method("AddChanged", analyze.TypeID{}, handler),
		Remover: method("RemoveChanged", analyze.TypeID{}, handler),
	}
	assert.True(t, c.EventsMatch(base, same).Compatible)

	diff := &analyze.EventInfo{Name: "Changed", Handler: other}
	assert.False(t, c.EventsMatch(base, diff).Compatible)
}
