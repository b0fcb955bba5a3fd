package deps

import "sort"

// Directive records one deferred import instruction: either a plain
// "import Module [as Alias]" or, when From is set, a
// "from From import Module [as Alias]".
type Directive struct {
	From   string // Source module ("" for a plain import)
	Module string // Module or attribute name to import
	Alias  string // Binding alias ("" to bind under Module)
}

// Binding returns the name the resolved handle is bound under:
// the alias when one was set, otherwise the module name.
func (d Directive) Binding() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Module
}

// Statement renders the directive as a Python import statement.
// Used for probing and for log output.
func (d Directive) Statement() string {
	s := "import " + d.Module
	if d.From != "" {
		s = "from " + d.From + " " + s
	}
	if d.Alias != "" {
		s += " as " + d.Alias
	}
	return s
}

// Handle is a deferred-binding descriptor for a resolved import. The
// concrete type depends on the Environment; pyenv returns Module and
// Symbol descriptors. Ref is the fully qualified name the handle stands
// for (e.g. "bson.ObjectId").
type Handle interface {
	Ref() string
}

// Bindings maps binding names to resolved handles. It is the replacement
// for injecting names into the caller's namespace: the caller assigns the
// handles it needs explicitly.
type Bindings map[string]Handle

// Names returns the binding names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
