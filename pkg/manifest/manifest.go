// Package manifest loads rundeps.toml files: the CLI's declarative input
// describing installer configuration and the packages a script depends on.
//
// The deps library itself reads no configuration files; a manifest is
// strictly a front-end convenience that is translated into Manager
// declarations via Apply.
//
// # Format
//
//	[install]
//	if_missing = true
//	python = "python3"
//	index_url = "https://pypi.org/simple"
//	extra_index_urls = ["https://mirror.example.com/simple"]
//	trusted_hosts = ["mirror.example.com"]
//
//	[[package]]
//	name = "pymongo"
//	version = ">=3.11.4, <4.0.0"
//
//	  [[package.import]]
//	  module = "pymongo"
//
//	  [[package.import]]
//	  from = "bson"
//	  names = ["ObjectId"]
//
//	[[package]]
//	name = "pyyaml"
//	version = ">=5.4.1, <6.0.0"
//	optional = true
//
//	  [[package.import]]
//	  module = "yaml"
package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rundeps/pkg/deps"
)

// DefaultFilename is the manifest looked up when no path is given.
const DefaultFilename = "rundeps.toml"

// Manifest is the decoded rundeps.toml file.
type Manifest struct {
	Install  Install   `toml:"install"`
	Packages []Package `toml:"package"`
}

// Install holds the installer configuration table.
type Install struct {
	IfMissing      bool     `toml:"if_missing"`
	Python         string   `toml:"python"`
	IndexURL       string   `toml:"index_url"`
	ExtraIndexURLs []string `toml:"extra_index_urls"`
	TrustedHosts   []string `toml:"trusted_hosts"`
}

// Package declares one dependency and its imports.
type Package struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Optional bool     `toml:"optional"`
	Imports  []Import `toml:"import"`
}

// Import declares either a plain module import (Module, optionally As) or
// a from-import (From plus Names, or From plus Module/As for a single
// aliased name).
type Import struct {
	From   string   `toml:"from"`
	Module string   `toml:"module"`
	Names  []string `toml:"names"`
	As     string   `toml:"as"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the structural invariants the TOML schema cannot
// express: package names present, every import naming something.
func (m *Manifest) Validate() error {
	if len(m.Packages) == 0 {
		return fmt.Errorf("no packages declared")
	}
	for i, p := range m.Packages {
		if p.Name == "" {
			return fmt.Errorf("package %d: name is required", i)
		}
		for j, imp := range p.Imports {
			if imp.Module == "" && len(imp.Names) == 0 {
				return fmt.Errorf("package %s: import %d: module or names required", p.Name, j)
			}
			if imp.Module != "" && len(imp.Names) > 0 {
				return fmt.Errorf("package %s: import %d: module and names are mutually exclusive", p.Name, j)
			}
			if imp.As != "" && imp.Module == "" {
				return fmt.Errorf("package %s: import %d: as requires module", p.Name, j)
			}
		}
	}
	return nil
}

// Options translates the install table into Manager options. The
// Installer and Logger fields are left for the caller to wire.
func (m *Manifest) Options() deps.Options {
	return deps.Options{
		InstallIfMissing: m.Install.IfMissing,
		IndexURL:         m.Install.IndexURL,
		ExtraIndexURLs:   m.Install.ExtraIndexURLs,
		TrustedHosts:     m.Install.TrustedHosts,
	}
}

// Apply declares every manifest package on the manager.
func (m *Manifest) Apply(mgr *deps.Manager) {
	for _, p := range m.Packages {
		pkg := mgr.Package(p.Name, p.Version)
		if p.Optional {
			pkg.Optional()
		}
		for _, imp := range p.Imports {
			declare(pkg, imp)
		}
	}
}

func declare(pkg *deps.Package, imp Import) {
	if imp.From == "" {
		pkg.ImportModule(imp.Module)
		if imp.As != "" {
			pkg.AsModule(imp.As)
		}
		return
	}

	from := pkg.FromModule(imp.From)
	if imp.Module != "" {
		from.ImportModule(imp.Module)
		if imp.As != "" {
			pkg.AsModule(imp.As)
		}
		return
	}
	from.ImportModules(imp.Names...)
}
