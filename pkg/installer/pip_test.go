package installer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rundeps/pkg/deps"
)

func mustSpec(t *testing.T, name, version string) deps.Spec {
	t.Helper()
	s, err := deps.ParseSpec(name, version)
	require.NoError(t, err)
	return s
}

// writeStub writes an executable shell script standing in for python.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreters use /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestArgs(t *testing.T) {
	p := NewPip("python3")

	args := p.args(mustSpec(t, "pymongo", ">=3.11.4, <4.0.0"), deps.InstallOptions{
		IndexURL:       "https://pypi.org/simple",
		ExtraIndexURLs: []string{"https://a.example/simple", "https://b.example/simple"},
		TrustedHosts:   []string{"a.example"},
	})

	assert.Equal(t, []string{
		"-m", "pip", "install",
		"--index-url", "https://pypi.org/simple",
		"--extra-index-url", "https://a.example/simple",
		"--extra-index-url", "https://b.example/simple",
		"--trusted-host", "a.example",
		"pymongo>=3.11.4, <4.0.0",
	}, args)
}

func TestArgsMinimal(t *testing.T) {
	p := NewPip("")
	args := p.args(mustSpec(t, "requests", ""), deps.InstallOptions{})
	assert.Equal(t, []string{"-m", "pip", "install", "requests"}, args)
}

func TestInstallSuccess(t *testing.T) {
	python := writeStub(t, "exit 0")
	p := NewPip(python)

	err := p.Install(context.Background(), mustSpec(t, "requests", ""), deps.InstallOptions{})
	assert.NoError(t, err)
}

func TestInstallFailure(t *testing.T) {
	python := writeStub(t, `echo "ERROR: something broke" >&2; exit 1`)
	p := NewPip(python)

	err := p.Install(context.Background(), mustSpec(t, "requests", ""), deps.InstallOptions{})
	require.Error(t, err)

	var ierr *InstallError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "requests", ierr.Requirement)
	assert.Contains(t, ierr.Stderr, "something broke")
	assert.NotErrorIs(t, err, ErrNoDistribution)
}

func TestInstallNoMatchingDistribution(t *testing.T) {
	python := writeStub(t, `echo "ERROR: No matching distribution found for _nonexistant_>1.0" >&2; exit 1`)
	p := NewPip(python)

	err := p.Install(context.Background(), mustSpec(t, "_nonexistant_", ">1.0"), deps.InstallOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDistribution)
}

func TestInstallMissingPython(t *testing.T) {
	p := NewPip(filepath.Join(t.TempDir(), "definitely-not-python"))

	err := p.Install(context.Background(), mustSpec(t, "requests", ""), deps.InstallOptions{})
	assert.Error(t, err)
}
