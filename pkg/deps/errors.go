package deps

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for dependency management.
var (
	// ErrManagerClosed is returned when a Manager is used after Close.
	ErrManagerClosed = errors.New("manager already closed")

	// ErrDistNotFound is returned (possibly wrapped) by Environment
	// implementations when a distribution is not installed.
	ErrDistNotFound = errors.New("distribution not found")

	// ErrNoInstaller is returned when an install is needed but no
	// Installer was configured.
	ErrNoInstaller = errors.New("no installer configured")

	// ErrAliasWithoutDirective is recorded when AsModule is called before
	// any import directive was added.
	ErrAliasWithoutDirective = errors.New("alias applied with no preceding import")

	// ErrEmptyName is returned for a package declaration with a blank name.
	ErrEmptyName = errors.New("package name is empty")

	// ErrEmptyModule is recorded for an import directive with a blank
	// module name.
	ErrEmptyModule = errors.New("module name is empty")
)

// InvalidVersionSpecError reports a version constraint that did not parse.
type InvalidVersionSpecError struct {
	Name string // Package the constraint was declared for
	Spec string // Constraint text as written
	Err  error  // Underlying parse error
}

// Error returns the error message.
func (e *InvalidVersionSpecError) Error() string {
	return fmt.Sprintf("%s: invalid version spec %q: %v", e.Name, e.Spec, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *InvalidVersionSpecError) Unwrap() error { return e.Err }

// VersionError reports an installed version that does not satisfy the
// declared constraint. It is raised after an install completes with a
// version outside the requested range.
type VersionError struct {
	Name      string // Package name
	Installed string // Version found in the environment
	Spec      string // Declared constraint
}

// Error returns the error message.
func (e *VersionError) Error() string {
	return fmt.Sprintf("installed version %s of %s does not satisfy %s", e.Installed, e.Name, e.Spec)
}

// Failure pairs a dependency spec with the error that left it unsatisfied.
type Failure struct {
	Spec Spec
	Err  error
}

// UnsatisfiedError aggregates every required package that remained
// unsatisfied at the end of a Close pass. Optional packages never appear
// here; their failures are skipped.
type UnsatisfiedError struct {
	Failures []Failure
}

// Error lists the unsatisfied requirements.
func (e *UnsatisfiedError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Spec.Requirement()
	}
	return fmt.Sprintf("unsatisfied required dependencies: %s", strings.Join(names, ", "))
}

// Unwrap exposes the individual failures for errors.Is/As matching.
func (e *UnsatisfiedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
