package classcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
)

var (
	target = analyze.TypeID{PkgPath: "test/shop", Name: "Order"}
	m1     = analyze.TypeID{PkgPath: "test/shop", Name: "AuditMixin"}
	m2     = analyze.TypeID{PkgPath: "test/shop", Name: "NotifyMixin"}
	iA     = analyze.TypeID{PkgPath: "test/shop", Name: "IA"}
	iB     = analyze.TypeID{PkgPath: "test/shop", Name: "IB"}
)

func TestNew(t *testing.T) {
	cc := New(target,
		WithMixin(m1, AlphabeticOrdering()),
		WithMixin(m2, Used(), DependsOn(m1)),
		WithComposedInterface(iA),
	)

	assert.Equal(t, target, cc.Target)
	require.Len(t, cc.Mixins, 2)
	assert.True(t, cc.Mixins[0].AcceptsAlphabeticOrdering)
	assert.Equal(t, MixinKindExtending, cc.Mixins[0].Kind)
	assert.Equal(t, MixinKindUsed, cc.Mixins[1].Kind)
	assert.Equal(t, []analyze.TypeID{m1}, cc.Mixins[1].ExplicitDependencies)
	assert.Equal(t, []analyze.TypeID{iA}, cc.ComposedInterfaces)

	mc, ok := cc.Mixin(m2)
	require.True(t, ok)
	assert.Equal(t, m2, mc.Type)

	_, ok = cc.Mixin(iA)
	assert.False(t, ok)
}

func TestKey_Equality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  ClassContext
		equal bool
	}{
		{
			name:  "same",
			a:     New(target, WithMixin(m1), WithMixin(m2)),
			b:     New(target, WithMixin(m1), WithMixin(m2)),
			equal: true,
		},
		{
			name:  "mixin order matters",
			a:     New(target, WithMixin(m1), WithMixin(m2)),
			b:     New(target, WithMixin(m2), WithMixin(m1)),
			equal: false,
		},
		{
			name:  "composed interface order does not matter",
			a:     New(target, WithComposedInterface(iA, iB)),
			b:     New(target, WithComposedInterface(iB, iA)),
			equal: true,
		},
		{
			name:  "dependency order does not matter",
			a:     New(target, WithMixin(m1, DependsOn(iA, iB))),
			b:     New(target, WithMixin(m1, DependsOn(iB, iA))),
			equal: true,
		},
		{
			name:  "kind matters",
			a:     New(target, WithMixin(m1)),
			b:     New(target, WithMixin(m1, Used())),
			equal: false,
		},
		{
			name:  "alphabetic flag matters",
			a:     New(target, WithMixin(m1)),
			b:     New(target, WithMixin(m1, AlphabeticOrdering())),
			equal: false,
		},
		{
			name:  "different target",
			a:     New(target),
			b:     New(m1),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.a.Key() == tt.b.Key())
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, New(target, WithMixin(m1)).Validate())

	assert.ErrorIs(t, New(analyze.TypeID{}).Validate(), ErrEmptyTarget)
	assert.ErrorIs(t, New(target, WithMixin(m1), WithMixin(m1)).Validate(), ErrDuplicateMixin)
	assert.ErrorIs(t, New(target, WithMixin(target)).Validate(), ErrMixinIsTarget)
}

func TestString(t *testing.T) {
	cc := New(target, WithMixin(m1), WithMixin(m2))
	assert.Equal(t, "shop.Order+[shop.AuditMixin, shop.NotifyMixin]", cc.String())
}
