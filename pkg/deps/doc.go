// Package deps manages runtime package dependencies for scripts and tools
// that drive a Python environment without a requirements file.
//
// A Manager collects package declarations over its lifetime and resolves
// them in a single pass when closed: already-satisfied packages are verified
// against their version constraints, missing ones are installed through the
// configured Installer, and every declared import is resolved into a Handle
// the caller binds explicitly.
//
// # Usage
//
//	env := pyenv.New("python3")
//	mgr := deps.Begin(env, deps.Options{
//	    InstallIfMissing: true,
//	    Installer:        installer.NewPip("python3"),
//	})
//
//	mgr.Package("pymongo", ">=3.11.4, <4.0.0").
//	    ImportModule("pymongo").
//	    FromModule("bson").ImportModule("ObjectId")
//
//	mgr.Package("pyyaml", ">=5.4.1, <6.0.0").Optional().
//	    ImportModule("yaml")
//
//	bindings, err := mgr.Close(ctx)
//	if err != nil {
//	    // one or more required packages could not be satisfied
//	}
//	oid := bindings["ObjectId"] // deferred-binding descriptor "bson.ObjectId"
//
// # Failure policy
//
// Close processes packages in declaration order and does not stop at the
// first failure: every required package that cannot be satisfied after a
// single install attempt is collected into one UnsatisfiedError. Optional
// packages that fail are skipped silently (logged via the configured
// Logger). Bindings for packages that did resolve are returned alongside
// the error; nothing is rolled back.
//
// Installs are strictly serialized because the installer mutates a shared
// environment. There is no retry and no concurrency.
package deps
