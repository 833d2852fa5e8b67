package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-composer/internal/analyze"
)

func codes(t *testing.T, yaml string, graph *analyze.TypeGraph) []string {
	t.Helper()

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	res := Validate(f, graph)

	var out []string
	for _, d := range append(res.Errors, res.Warnings...) {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_Shop(t *testing.T) {
	res := Validate(loadShop(t), nil)
	assert.True(t, res.IsValid(), res.Summary())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "manifest_is_nil", res.Errors[0].Code)
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "unsupported version",
			yaml: `version: "2"`,
			want: []string{"unsupported_version"},
		},
		{
			name: "duplicate type",
			yaml: "types:\n  - name: A\n  - name: A\n",
			want: []string{"duplicate_type"},
		},
		{
			name: "missing name",
			yaml: "types:\n  - kind: class\n",
			want: []string{"type_name_missing"},
		},
		{
			name: "unknown implements",
			yaml: "types:\n  - name: A\n    implements: IMissing\n",
			want: []string{"unknown_type"},
		},
		{
			name: "unknown enums",
			yaml: "types:\n  - name: A\n    kind: struct\n    usage: often\n    methods:\n      - name: M\n        override: x\n",
			want: []string{"unknown_kind", "unknown_usage", "unknown_override"},
		},
		{
			name: "composition",
			yaml: `
types:
  - name: T
  - name: A
compositions:
  - target: T
    mixins:
      - type: A
        kind: weird
        depends_on: B
      - type: A
  - mixins: []
`,
			want: []string{"unknown_mixin_kind", "unknown_type", "duplicate_mixin", "target_missing"},
		},
		{
			name: "duplicate composition",
			yaml: `
types:
  - name: T
  - name: A
compositions:
  - target: T
    mixins: [{type: A}]
  - target: T
    mixins: [{type: A}]
`,
			want: []string{"duplicate_composition"},
		},
		{
			name: "infrastructure attributes need no declaration",
			yaml: "types:\n  - name: A\n    attributes:\n      - type: mixins.SuppressAttributes\n        args: [X]\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(t, tt.yaml, nil))
		})
	}
}

func TestValidate_TypesFromGraph(t *testing.T) {
	g := analyze.NewTypeGraph()
	g.Add(&analyze.TypeInfo{ID: analyze.TypeID{PkgPath: "p", Name: "INotify"}, Kind: analyze.TypeKindInterface})

	yaml := "package: p\ntypes:\n  - name: A\n    implements: INotify\n"
	assert.Empty(t, codes(t, yaml, g))
	assert.Equal(t, []string{"unknown_type"}, codes(t, yaml, nil))
}

func TestValidate_Suggestions(t *testing.T) {
	f, err := Parse([]byte("package: p\ntypes:\n  - name: INotify\n    kind: interface\n  - name: A\n    implements: INotifie\n"))
	require.NoError(t, err)

	res := Validate(f, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, []string{"p.INotify"}, res.Errors[0].Suggestions)
}
