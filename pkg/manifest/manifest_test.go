package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rundeps/pkg/deps"
)

const sample = `
[install]
if_missing = true
python = "python3.12"
index_url = "https://pypi.org/simple"
extra_index_urls = ["https://mirror.example.com/simple"]
trusted_hosts = ["mirror.example.com"]

[[package]]
name = "pymongo"
version = ">=3.11.4, <4.0.0"

  [[package.import]]
  module = "pymongo"

  [[package.import]]
  from = "bson"
  names = ["ObjectId"]

[[package]]
name = "pyyaml"
version = ">=5.4.1, <6.0.0"
optional = true

  [[package.import]]
  module = "yaml"
  as = "y"
`

func decode(t *testing.T, src string) *Manifest {
	t.Helper()
	var m Manifest
	_, err := toml.Decode(src, &m)
	require.NoError(t, err)
	return &m
}

type nullEnv struct{}

func (nullEnv) DistVersion(context.Context, string) (string, error) { return "", deps.ErrDistNotFound }
func (nullEnv) Probe(context.Context, deps.Directive) error         { return deps.ErrDistNotFound }
func (nullEnv) Resolve(context.Context, deps.Directive) (deps.Handle, error) {
	return nil, deps.ErrDistNotFound
}

func TestDecode(t *testing.T) {
	m := decode(t, sample)
	require.NoError(t, m.Validate())

	assert.True(t, m.Install.IfMissing)
	assert.Equal(t, "python3.12", m.Install.Python)
	assert.Equal(t, "https://pypi.org/simple", m.Install.IndexURL)
	require.Len(t, m.Packages, 2)
	assert.Equal(t, "pymongo", m.Packages[0].Name)
	assert.True(t, m.Packages[1].Optional)
}

func TestOptions(t *testing.T) {
	m := decode(t, sample)
	o := m.Options()

	assert.True(t, o.InstallIfMissing)
	assert.Equal(t, "https://pypi.org/simple", o.IndexURL)
	assert.Equal(t, []string{"https://mirror.example.com/simple"}, o.ExtraIndexURLs)
	assert.Equal(t, []string{"mirror.example.com"}, o.TrustedHosts)
}

func TestApply(t *testing.T) {
	m := decode(t, sample)
	mgr := deps.Begin(nullEnv{}, deps.Options{})
	m.Apply(mgr)

	packages := mgr.Packages()
	require.Len(t, packages, 2)

	pymongo := packages[0]
	require.NoError(t, pymongo.Err())
	assert.Equal(t, "pymongo>=3.11.4, <4.0.0", pymongo.Spec().Requirement())
	directives := pymongo.Directives()
	require.Len(t, directives, 2)
	assert.Equal(t, "import pymongo", directives[0].Statement())
	assert.Equal(t, "from bson import ObjectId", directives[1].Statement())

	pyyaml := packages[1]
	assert.True(t, pyyaml.Spec().Optional)
	require.Len(t, pyyaml.Directives(), 1)
	assert.Equal(t, "y", pyyaml.Directives()[0].Binding())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rundeps.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Packages, 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "no packages", src: `[install]` + "\n" + `if_missing = true`},
		{name: "missing name", src: "[[package]]\nversion = \">=1.0\""},
		{name: "empty import", src: "[[package]]\nname = \"x\"\n[[package.import]]\n"},
		{
			name: "module and names",
			src:  "[[package]]\nname = \"x\"\n[[package.import]]\nmodule = \"a\"\nnames = [\"b\"]",
		},
		{
			name: "alias on names",
			src:  "[[package]]\nname = \"x\"\n[[package.import]]\nfrom = \"a\"\nnames = [\"b\"]\nas = \"c\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := decode(t, tt.src)
			assert.Error(t, m.Validate())
		})
	}
}
