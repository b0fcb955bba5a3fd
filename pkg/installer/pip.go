// Package installer invokes pip to install packages into a Python
// environment. It implements the deps.Installer interface; the network
// transport, index resolution, and dependency solving are entirely pip's.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/rundeps/pkg/deps"
)

// ErrNoDistribution is wrapped into install failures caused by pip finding
// no matching distribution for the requirement (wrong name, impossible
// version range, or an index that does not carry the package).
var ErrNoDistribution = errors.New("no matching distribution")

// InstallError reports a pip invocation that exited non-zero.
type InstallError struct {
	Requirement string // The requirement argument passed to pip
	Stderr      string // Captured stderr (trimmed)
	Err         error  // Underlying exec error or ErrNoDistribution
}

// Error returns the error message.
func (e *InstallError) Error() string {
	return fmt.Sprintf("pip install %s: %v", e.Requirement, e.Err)
}

// Unwrap returns the underlying error.
func (e *InstallError) Unwrap() error { return e.Err }

// Pip installs packages by shelling out to `python -m pip install`.
// Invocations run one at a time under a Manager; Pip itself keeps no
// state between calls.
type Pip struct {
	python string
}

// NewPip returns a Pip bound to the given Python executable. An empty
// string selects "python3" from PATH.
func NewPip(python string) *Pip {
	if python == "" {
		python = "python3"
	}
	return &Pip{python: python}
}

// Install runs pip for a single requirement, forwarding the index
// configuration. It blocks until pip exits; cancelling the context kills
// the subprocess. A non-zero exit returns an *InstallError, wrapping
// ErrNoDistribution when pip reported that no matching distribution
// exists.
func (p *Pip) Install(ctx context.Context, s deps.Spec, opts deps.InstallOptions) error {
	if _, err := exec.LookPath(p.python); err != nil {
		return fmt.Errorf("python executable %q not found: %w", p.python, err)
	}

	cmd := exec.CommandContext(ctx, p.python, p.args(s, opts)...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return &InstallError{
			Requirement: s.Requirement(),
			Stderr:      strings.TrimSpace(errBuf.String()),
			Err:         classify(err, errBuf.String()),
		}
	}
	return nil
}

// args builds the pip argument vector: install options first, the
// requirement last.
func (p *Pip) args(s deps.Spec, opts deps.InstallOptions) []string {
	args := []string{"-m", "pip", "install"}

	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	for _, url := range opts.ExtraIndexURLs {
		args = append(args, "--extra-index-url", url)
	}
	for _, host := range opts.TrustedHosts {
		args = append(args, "--trusted-host", host)
	}

	return append(args, s.Requirement())
}

// classify maps pip's stderr onto a more specific error where possible.
func classify(err error, stderr string) error {
	if strings.Contains(stderr, "No matching distribution") {
		return ErrNoDistribution
	}
	return err
}
