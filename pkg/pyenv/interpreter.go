// Package pyenv implements the deps.Environment interface against a real
// Python interpreter. Distribution versions come from importlib.metadata,
// import probes run as short `python -c` subprocesses, and resolved
// directives are returned as deferred-binding descriptors (Module, Symbol)
// rather than bound into any namespace.
package pyenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/matzehuels/rundeps/pkg/deps"
)

// distNotFoundExit is the exit status the version program uses to signal a
// missing distribution, keeping the check independent of traceback text.
const distNotFoundExit = 3

// versionProgram prints the installed version of the distribution named in
// argv[1], or exits with distNotFoundExit when it is not installed.
const versionProgram = `import sys
import importlib.metadata
try:
    sys.stdout.write(importlib.metadata.version(sys.argv[1]))
except importlib.metadata.PackageNotFoundError:
    sys.exit(3)
`

var normalizeRE = regexp.MustCompile(`[-_.]+`)

// NormalizeDist returns the PEP 503 normalized form of a distribution
// name: lowercase, with runs of hyphens, underscores, and dots collapsed
// to a single hyphen (e.g. "My._Package" → "my-package").
func NormalizeDist(name string) string {
	return normalizeRE.ReplaceAllString(strings.ToLower(name), "-")
}

// Interpreter is a deps.Environment backed by a Python executable.
//
// All methods shell out to the interpreter and block until it exits;
// context cancellation kills the subprocess. Safe for concurrent use, as
// each call runs its own subprocess.
type Interpreter struct {
	python string
}

// New returns an Interpreter for the given Python executable. An empty
// string selects "python3" from PATH.
func New(python string) *Interpreter {
	if python == "" {
		python = "python3"
	}
	return &Interpreter{python: python}
}

// Python returns the configured executable.
func (i *Interpreter) Python() string { return i.python }

// DistVersion returns the installed version of a distribution, consulting
// importlib.metadata under the PEP 503 normalized name. Returns an error
// wrapping deps.ErrDistNotFound when the distribution is not installed.
func (i *Interpreter) DistVersion(ctx context.Context, dist string) (string, error) {
	cmd := exec.CommandContext(ctx, i.python, "-c", versionProgram, NormalizeDist(dist))

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == distNotFoundExit {
			return "", fmt.Errorf("%s: %w", dist, deps.ErrDistNotFound)
		}
		return "", fmt.Errorf("query version of %s: %w: %s", dist, err, strings.TrimSpace(errBuf.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// Probe executes the directive's import statement in a throwaway
// interpreter. A nil error means the import is available; nothing is
// bound.
func (i *Interpreter) Probe(ctx context.Context, d deps.Directive) error {
	cmd := exec.CommandContext(ctx, i.python, "-c", d.Statement())

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", d.Statement(), err, lastLine(errBuf.String()))
	}
	return nil
}

// Resolve probes the directive and, on success, returns its
// deferred-binding descriptor: a Module for plain imports, a Symbol for
// from-imports.
func (i *Interpreter) Resolve(ctx context.Context, d deps.Directive) (deps.Handle, error) {
	if err := i.Probe(ctx, d); err != nil {
		return nil, err
	}
	if d.From != "" {
		return Symbol{Module: d.From, Attr: d.Module}, nil
	}
	return Module{Name: d.Module}, nil
}

// lastLine extracts the final non-empty line of a Python traceback, which
// carries the actual exception message.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

// Module is a deferred-binding descriptor for a plain module import.
type Module struct {
	Name string
}

// Ref returns the module's import path.
func (m Module) Ref() string { return m.Name }

// Symbol is a deferred-binding descriptor for an attribute imported out
// of a module (`from Module import Attr`).
type Symbol struct {
	Module string
	Attr   string
}

// Ref returns the fully qualified attribute name.
func (s Symbol) Ref() string { return s.Module + "." + s.Attr }
