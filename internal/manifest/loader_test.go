package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "shop.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "example.com/shop", f.Package)
	require.Len(t, f.Types, 6)

	m1 := f.Types[4]
	assert.Equal(t, "M1", m1.Name)
	assert.Equal(t, "example.com/shop", m1.Package, "package defaults to the file package")
	assert.Equal(t, KindClass, m1.Kind, "kind defaults to class")
	assert.Equal(t, StringOrArray{"INotify"}, m1.Implements)
	assert.Equal(t, StringOrArray{"ITargetBase"}, m1.Requires.Base)

	require.Len(t, f.Compositions, 1)
	c := f.Compositions[0]
	assert.Equal(t, StringOrArray{"INotify"}, c.ComposedInterfaces)
	assert.Equal(t, MixinExtending, c.Mixins[0].Kind)
	assert.Equal(t, MixinUsed, c.Mixins[1].Kind)
	assert.True(t, c.Mixins[1].Alphabetic)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	assert.Empty(t, f.Types)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("version: \"1\"\nmixins: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest YAML")
}

func TestParse_StringOrArray(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want StringOrArray
	}{
		{"scalar", "implements: IFoo", StringOrArray{"IFoo"}},
		{"list", "implements: [IFoo, IBar]", StringOrArray{"IFoo", "IBar"}},
		{"empty scalar", "implements: \"\"", StringOrArray{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte("types:\n  - name: A\n    " + tt.yaml + "\n"))
			require.NoError(t, err)
			require.Len(t, f.Types, 1)
			assert.Equal(t, tt.want, f.Types[0].Implements)
		})
	}

	_, err := Parse([]byte("types:\n  - name: A\n    implements: {a: b}\n"))
	require.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "shop.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "implements: INotify")

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
