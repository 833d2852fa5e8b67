package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopManifest = `
version: "1"
package: example.com/shop
types:
  - name: INotify
    kind: interface
    methods:
      - name: Notify
  - name: IMissing
    kind: interface
  - name: Target
  - name: A
    implements: INotify
    methods:
      - name: Notify
  - name: B
    requires:
      this: INotify
  - name: Broken
    requires:
      base: IMissing
compositions:
  - target: Target
    mixins:
      - type: B
      - type: A
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "compose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MIXIN_LOG_LEVEL", "error")

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "--manifest", writeManifest(t, shopManifest))
	require.NoError(t, err)

	assert.Contains(t, out, "shop.Target (2 mixins)")
	assert.Contains(t, out, "this dependency shop.INotify -> shop.A")
	assert.Contains(t, out, "introduces shop.INotify from shop.A")
}

func TestResolve_SingleComposition(t *testing.T) {
	out, err := run(t, "resolve", "--manifest", writeManifest(t, shopManifest),
		"--target", "example.com/shop.Target", "--mixin", "example.com/shop.Broken")
	require.ErrorIs(t, err, errFailed)

	assert.Contains(t, out, "shop.Target (2 mixins)", "the valid composition is still printed")
	assert.Contains(t, out, "dependency_unsatisfied")
	assert.Contains(t, out, "shop.IMissing")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "--manifest", writeManifest(t, shopManifest))
	require.NoError(t, err)
	assert.Contains(t, out, "ok 0 errors")
}

func TestDump(t *testing.T) {
	out, err := run(t, "dump", "--manifest", writeManifest(t, shopManifest))
	require.NoError(t, err)
	assert.Contains(t, out, "report.Summary")
}

func TestInvalidManifest(t *testing.T) {
	_, err := run(t, "resolve", "--manifest", writeManifest(t, "types:\n  - name: A\n    implements: INope\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_type")
}

func TestNoCompositions(t *testing.T) {
	_, err := run(t, "validate", "--manifest", writeManifest(t, "types: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compositions")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mixin-composer")
}
