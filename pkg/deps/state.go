package deps

// State tracks a declared package through the resolution pass:
//
//	Declared → {Satisfied | Installing → {Installed | Failed}}
//
// Satisfied and Installed lead to Imported once the package's directives
// resolve. Failed leads to Skipped for optional packages and to Error for
// required ones. Imported, Skipped, and Error are terminal.
type State int

const (
	StateDeclared State = iota
	StateSatisfied
	StateInstalling
	StateInstalled
	StateFailed
	StateImported
	StateSkipped
	StateError
)

var stateNames = map[State]string{
	StateDeclared:   "declared",
	StateSatisfied:  "satisfied",
	StateInstalling: "installing",
	StateInstalled:  "installed",
	StateFailed:     "failed",
	StateImported:   "imported",
	StateSkipped:    "skipped",
	StateError:      "error",
}

// String returns the lowercase state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state is final for a resolution pass.
func (s State) Terminal() bool {
	return s == StateImported || s == StateSkipped || s == StateError
}
