// Package pkg provides the core libraries for rundeps runtime dependency
// management.
//
// # Overview
//
// Rundeps lets a program declare the Python packages it needs at runtime,
// installs whatever is missing, and resolves the declared imports into
// deferred-binding handles. The pkg directory is organized into:
//
//  1. [deps] - Domain logic (declarations, satisfaction, install orchestration)
//  2. [pyenv] - Python interpreter integration (version queries, import probes)
//  3. [installer] - Package installer backends (pip)
//  4. [manifest] - Declarative rundeps.toml front-end
//  5. [observability] - Install lifecycle hooks
//
// # Architecture
//
// The typical flow through a manager scope:
//
//	Declarations (fluent builder or manifest)
//	         ↓
//	Probe (installed version + import availability)
//	         ↓
//	Install missing packages (pip)
//	         ↓
//	Resolve imports → Bindings (name → handle)
//
// The deps package owns the state machine; pyenv and installer are
// pluggable behind the Environment and Installer interfaces, so tests can
// run hermetically.
package pkg
