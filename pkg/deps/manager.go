package deps

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rundeps/pkg/observability"
)

// Environment answers questions about the target runtime environment and
// resolves directives into handles. The production implementation is
// pyenv.Interpreter; tests supply fakes.
type Environment interface {
	// DistVersion returns the installed version of a distribution.
	// Returns an error wrapping ErrDistNotFound when it is not installed.
	DistVersion(ctx context.Context, dist string) (string, error)

	// Probe reports whether the directive would resolve, without binding
	// anything. A nil error means the import is available.
	Probe(ctx context.Context, d Directive) error

	// Resolve turns a directive into a deferred-binding handle.
	Resolve(ctx context.Context, d Directive) (Handle, error)
}

// InstallOptions carries the index configuration for one install
// invocation. The values come from the Manager's Options.
type InstallOptions struct {
	IndexURL       string   // --index-url (ignored when empty)
	ExtraIndexURLs []string // --extra-index-url, repeated
	TrustedHosts   []string // --trusted-host, repeated
}

// Installer installs a single package into the environment. The production
// implementation is installer.Pip. Install must block until the installer
// subprocess exits; the Manager never runs installs concurrently.
type Installer interface {
	Install(ctx context.Context, s Spec, opts InstallOptions) error
}

// Options configures a Manager.
type Options struct {
	// InstallIfMissing enables installing unsatisfied packages at Close.
	// When false, missing required packages fail without an install attempt.
	InstallIfMissing bool

	// IndexURL, ExtraIndexURLs, and TrustedHosts are forwarded to every
	// install invocation.
	IndexURL       string
	ExtraIndexURLs []string
	TrustedHosts   []string

	// Installer performs installs. May be nil when InstallIfMissing is
	// false and InstallNow is never used.
	Installer Installer

	// Logger receives progress messages. Defaults to a no-op.
	Logger func(format string, args ...any)
}

// WithDefaults returns a copy of opts with zero values replaced.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// Manager collects package declarations and resolves them once, when
// closed. Use Begin to open a scope, declare packages with Package, and
// finish with Close. A Manager is single-use: after Close it is inert and
// every operation returns ErrManagerClosed.
//
// Manager is not safe for concurrent use; declarations and Close are
// expected from a single goroutine, matching the sequential nature of the
// underlying installer.
type Manager struct {
	env      Environment
	opts     Options
	runID    string
	packages []*Package
	closed   bool
}

// Begin opens a manager scope against the given environment.
func Begin(env Environment, opts Options) *Manager {
	return &Manager{
		env:   env,
		opts:  opts.WithDefaults(),
		runID: uuid.NewString(),
	}
}

// RunID returns the unique id of this manager scope, used to correlate
// log lines and reports.
func (m *Manager) RunID() string { return m.runID }

// Packages returns the declared packages in declaration order.
func (m *Manager) Packages() []*Package {
	out := make([]*Package, len(m.packages))
	copy(out, m.packages)
	return out
}

// Package declares a dependency and returns its builder. An invalid
// version spec is recorded on the returned Package and surfaces at Close.
func (m *Manager) Package(name, version string) *Package {
	p := &Package{}
	p.spec, p.err = ParseSpec(name, version)
	if m.closed {
		p.err = ErrManagerClosed
	}
	m.packages = append(m.packages, p)
	return p
}

// Close runs the resolution pass and consumes the manager.
//
// Packages are processed in declaration order: satisfied packages resolve
// their directives immediately; unsatisfied ones are installed when
// InstallIfMissing is set, then verified against their constraint and
// resolved. Optional packages that cannot be satisfied are skipped.
//
// The returned Bindings contain every resolved directive, keyed by alias
// or module name. When one or more required packages remain unsatisfied,
// Close returns the partial bindings together with an *UnsatisfiedError
// listing every failure; directives of failed packages are never resolved.
func (m *Manager) Close(ctx context.Context) (Bindings, error) {
	if m.closed {
		return nil, ErrManagerClosed
	}
	m.closed = true

	m.opts.Logger("run %s: resolving %d declared packages", shortID(m.runID), len(m.packages))

	bound := Bindings{}
	var failures []Failure
	for _, p := range m.packages {
		err := m.ensure(ctx, p, bound, false)
		if err == nil {
			continue
		}
		// Builder errors are caller bugs and fail the package even when
		// it is optional.
		if p.spec.Optional && p.err == nil {
			p.state = StateSkipped
			m.opts.Logger("optional package %s skipped: %v", p.spec.Name, err)
			continue
		}
		p.state = StateError
		failures = append(failures, Failure{Spec: p.spec, Err: err})
	}

	if len(failures) > 0 {
		return bound, &UnsatisfiedError{Failures: failures}
	}
	return bound, nil
}

// Guard is the result of InstallNow. It gates the caller's follow-up work:
// run it only when OK reports true. Failures are carried on the guard
// instead of propagating.
type Guard struct {
	spec     Spec
	bindings Bindings
	err      error
}

// OK reports whether the install (and module resolution, if requested)
// succeeded.
func (g *Guard) OK() bool { return g.err == nil }

// Err returns the failure that closed the guard, or nil.
func (g *Guard) Err() error { return g.err }

// Spec returns the spec the guard was opened for.
func (g *Guard) Spec() Spec { return g.spec }

// Bindings returns the handles resolved for the guard's module, if one was
// requested. Nil when the guard is not OK.
func (g *Guard) Bindings() Bindings { return g.bindings }

// InstallNow installs a single package immediately, bypassing the deferred
// batch. When module is non-empty it is also resolved and bound on the
// returned Guard. The package is not added to the manager's declarations,
// so a later Close does not process it again.
//
// InstallNow installs regardless of Options.InstallIfMissing, but skips
// the install when the requirement is already satisfied.
func (m *Manager) InstallNow(ctx context.Context, name, version, module string) *Guard {
	g := &Guard{}
	if m.closed {
		g.err = ErrManagerClosed
		return g
	}

	p := &Package{}
	p.spec, p.err = ParseSpec(name, version)
	g.spec = p.spec
	if module != "" {
		p.ImportModule(module)
	}

	bound := Bindings{}
	if err := m.ensure(ctx, p, bound, true); err != nil {
		m.opts.Logger("unable to install package %s: %v", p.spec, err)
		g.err = err
		return g
	}
	g.bindings = bound
	return g
}

// ensure drives one package through the state machine. With force set the
// install step runs even when InstallIfMissing is off (the InstallNow
// path). Resolved handles are merged into bound only after every directive
// of the package resolved.
func (m *Manager) ensure(ctx context.Context, p *Package, bound Bindings, force bool) error {
	if p.err != nil {
		return p.err
	}

	ok, err := m.probe(ctx, p)
	if err != nil {
		return err
	}
	observability.Installs().OnProbe(ctx, p.spec.Name, ok)
	if ok {
		p.state = StateSatisfied
		return m.resolve(ctx, p, bound)
	}

	if !m.opts.InstallIfMissing && !force {
		return fmt.Errorf("missing required runtime dependency: %s", p.spec)
	}
	if m.opts.Installer == nil {
		return ErrNoInstaller
	}

	p.state = StateInstalling
	m.opts.Logger("installing runtime dependency: %s ...", p.spec)
	observability.Installs().OnInstallStart(ctx, p.spec.Name)
	start := time.Now()
	err = m.opts.Installer.Install(ctx, p.spec, m.installOptions())
	observability.Installs().OnInstallComplete(ctx, p.spec.Name, time.Since(start), err)
	if err != nil {
		p.state = StateFailed
		return err
	}
	p.state = StateInstalled

	if err := m.verify(ctx, p.spec); err != nil {
		p.state = StateFailed
		return err
	}
	return m.resolve(ctx, p, bound)
}

// probe reports whether the package's requirement is already satisfied:
// the installed distribution version must satisfy the constraint and every
// declared directive must be importable.
func (m *Manager) probe(ctx context.Context, p *Package) (bool, error) {
	if p.spec.Constraint != nil {
		v, err := m.env.DistVersion(ctx, p.spec.Name)
		if errors.Is(err, ErrDistNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !p.spec.Satisfied(v) {
			m.opts.Logger("%s: installed version %s does not satisfy %s", p.spec.Name, v, p.spec.Raw)
			return false, nil
		}
	}
	for _, d := range p.probeDirectives() {
		if err := m.env.Probe(ctx, d); err != nil {
			return false, nil
		}
	}
	return true, nil
}

// verify re-checks the constraint after an install completed.
func (m *Manager) verify(ctx context.Context, s Spec) error {
	if s.Constraint == nil {
		return nil
	}
	v, err := m.env.DistVersion(ctx, s.Name)
	if err != nil {
		return fmt.Errorf("%s not found after installation: %w", s.Name, err)
	}
	if !s.Satisfied(v) {
		return &VersionError{Name: s.Name, Installed: v, Spec: s.Raw}
	}
	return nil
}

// resolve turns every directive of a satisfied package into a handle.
// Handles are staged and merged only when the whole package resolves, so a
// failed package never contributes partial bindings.
func (m *Manager) resolve(ctx context.Context, p *Package, bound Bindings) error {
	staged := Bindings{}
	for _, d := range p.directives {
		h, err := m.env.Resolve(ctx, d)
		if err != nil {
			if d.From == "" {
				return fmt.Errorf("import %s: %w (missing a FromModule(%q) call?)", d.Module, err, p.spec.Name)
			}
			return fmt.Errorf("from %s import %s: %w", d.From, d.Module, err)
		}
		m.opts.Logger("resolved %s", d.Statement())
		staged[d.Binding()] = h
	}
	maps.Copy(bound, staged)
	p.state = StateImported
	return nil
}

func (m *Manager) installOptions() InstallOptions {
	return InstallOptions{
		IndexURL:       m.opts.IndexURL,
		ExtraIndexURLs: m.opts.ExtraIndexURLs,
		TrustedHosts:   m.opts.TrustedHosts,
	}
}

// shortID truncates a uuid for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
