package deps

import "fmt"

// Package is a single dependency declaration under a Manager. It records
// the dependency spec and the import directives to resolve once the
// requirement is satisfied.
//
// The builder methods return the Package for chaining. Errors made while
// building (blank module names, AsModule with no prior import, an invalid
// version spec) are sticky: the first one is kept and surfaces when the
// Manager closes, failing the package even if it is optional.
type Package struct {
	spec       Spec
	directives []Directive
	state      State
	err        error
}

// Spec returns the package's dependency spec.
func (p *Package) Spec() Spec { return p.spec }

// State returns the package's current resolution state.
func (p *Package) State() State { return p.state }

// Err returns the sticky builder error, if any.
func (p *Package) Err() error { return p.err }

// Directives returns a copy of the recorded import directives.
func (p *Package) Directives() []Directive {
	out := make([]Directive, len(p.directives))
	copy(out, p.directives)
	return out
}

// Optional marks the package as optional: if it cannot be satisfied its
// directives are skipped and no error propagates from Close.
func (p *Package) Optional() *Package {
	p.spec.Optional = true
	return p
}

// ImportModule adds a plain import directive for module.
func (p *Package) ImportModule(module string) *Package {
	if module == "" {
		p.fail(ErrEmptyModule)
		return p
	}
	p.directives = append(p.directives, Directive{Module: module})
	return p
}

// ImportModules adds a plain import directive per module.
func (p *Package) ImportModules(modules ...string) *Package {
	for _, m := range modules {
		p.ImportModule(m)
	}
	return p
}

// FromModule returns a From clause bound to the given source module, for
// chaining ImportModule/ImportModules calls that import names out of it.
func (p *Package) FromModule(from string) *From {
	return &From{from: from, pkg: p}
}

// AsModule sets the binding alias of the most recently added directive.
// Calling it with no preceding import records ErrAliasWithoutDirective.
func (p *Package) AsModule(alias string) *Package {
	if len(p.directives) == 0 {
		p.fail(ErrAliasWithoutDirective)
		return p
	}
	p.directives[len(p.directives)-1].Alias = alias
	return p
}

// probeDirectives returns the directives used for the satisfaction probe.
// A package declared without imports is probed by importing its own name.
func (p *Package) probeDirectives() []Directive {
	if len(p.directives) > 0 {
		return p.directives
	}
	return []Directive{{Module: p.spec.Name}}
}

// fail records the first builder error, qualified with the package name.
func (p *Package) fail(err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", p.spec.Name, err)
	}
}

// From is a from-clause bound to a source module. Its import methods add
// directives that resolve attributes of the source module, then hand back
// the Package so aliasing and further declarations chain naturally:
//
//	pkg.FromModule("bson").ImportModule("ObjectId").AsModule("OID")
type From struct {
	from string
	pkg  *Package
}

// ImportModule adds a directive importing name from the bound module.
func (f *From) ImportModule(name string) *Package {
	if name == "" {
		f.pkg.fail(ErrEmptyModule)
		return f.pkg
	}
	f.pkg.directives = append(f.pkg.directives, Directive{From: f.from, Module: name})
	return f.pkg
}

// ImportModules adds one directive per name from the bound module.
func (f *From) ImportModules(names ...string) *Package {
	for _, n := range names {
		f.ImportModule(n)
	}
	return f.pkg
}
