package deps

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Spec describes one declared dependency: a package name, an optional
// version-range constraint, and whether the package is optional.
//
// Constraints use the pip operator set (==, >=, <=, >, <) with
// comma-separated conjunctions, e.g. ">=3.11.4, <4.0.0". They are
// normalized into semver constraints at parse time; Raw preserves the
// original text for installer arguments and error messages.
type Spec struct {
	Name       string              // Package name (never empty in a valid spec)
	Raw        string              // Original constraint text ("" when unconstrained)
	Constraint *semver.Constraints // Parsed constraint (nil when unconstrained)
	Optional   bool                // Optional packages fail silently
}

// ParseSpec validates name and parses the pip-style version constraint.
//
// An empty version string yields an unconstrained spec. A constraint that
// does not parse returns an InvalidVersionSpecError; an empty or blank name
// returns ErrEmptyName.
func ParseSpec(name, version string) (Spec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, ErrEmptyName
	}

	s := Spec{Name: name}
	version = strings.TrimSpace(version)
	if version == "" {
		return s, nil
	}

	c, err := semver.NewConstraint(normalizeConstraint(version))
	if err != nil {
		return s, &InvalidVersionSpecError{Name: name, Spec: version, Err: err}
	}
	s.Raw = version
	s.Constraint = c
	return s, nil
}

// normalizeConstraint rewrites pip operators into semver syntax.
// Only "==" differs (semver spells exact matches "="); conjunctions are
// comma-separated in both.
func normalizeConstraint(spec string) string {
	parts := strings.Split(spec, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "==") {
			p = "=" + strings.TrimPrefix(p, "==")
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

// Satisfied reports whether an installed version satisfies the constraint.
// An unconstrained spec is satisfied by any version. Versions that do not
// parse as semver (e.g. "2.7.2.post1") are treated as unsatisfied.
func (s Spec) Satisfied(version string) bool {
	if s.Constraint == nil {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return s.Constraint.Check(v)
}

// Requirement returns the pip requirement argument, e.g. "pymongo>=3.11.4, <4.0.0".
func (s Spec) Requirement() string {
	return s.Name + s.Raw
}

// String returns the spec in requirement form.
func (s Spec) String() string {
	return s.Requirement()
}
