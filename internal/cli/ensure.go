package cli

import (
	"context"
	"errors"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rundeps/pkg/deps"
	"github.com/matzehuels/rundeps/pkg/installer"
	"github.com/matzehuels/rundeps/pkg/manifest"
	"github.com/matzehuels/rundeps/pkg/pyenv"
)

// runOpts holds the command-line flags shared by ensure and check.
// Flags override the manifest's [install] table.
type runOpts struct {
	python         string   // python executable
	indexURL       string   // --index-url override
	extraIndexURLs []string // --extra-index-url overrides
	trustedHosts   []string // --trusted-host overrides
	install        bool     // whether missing packages may be installed
}

// newEnsureCmd creates the ensure command: install whatever the manifest
// declares and is missing, then resolve every import.
func newEnsureCmd() *cobra.Command {
	opts := runOpts{install: true}

	cmd := &cobra.Command{
		Use:   "ensure [manifest]",
		Short: "Install missing dependencies and resolve declared imports",
		Long: `Ensure reads a manifest (rundeps.toml by default), installs every
declared package whose requirement is not already satisfied, and prints
the resolved import bindings.

Required packages that cannot be satisfied after one install attempt fail
the command; optional packages are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), manifestArg(args), opts)
		},
	}

	addRunFlags(cmd, &opts)
	return cmd
}

// newCheckCmd creates the check command: probe-only, never installs.
func newCheckCmd() *cobra.Command {
	opts := runOpts{install: false}

	cmd := &cobra.Command{
		Use:   "check [manifest]",
		Short: "Report which declared dependencies are satisfied, without installing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), manifestArg(args), opts)
		},
	}

	addRunFlags(cmd, &opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOpts) {
	cmd.Flags().StringVar(&opts.python, "python", "", "python executable (default: manifest setting, then python3)")
	cmd.Flags().StringVar(&opts.indexURL, "index-url", "", "package index URL")
	cmd.Flags().StringArrayVar(&opts.extraIndexURLs, "extra-index-url", nil, "additional package index URL (repeatable)")
	cmd.Flags().StringArrayVar(&opts.trustedHosts, "trusted-host", nil, "trusted host (repeatable)")
}

func manifestArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return manifest.DefaultFilename
}

// run loads the manifest, drives a manager scope over its declarations,
// and prints the outcome. With opts.install set, missing packages are
// installed regardless of the manifest's if_missing flag (that flag
// applies when a program embeds the manifest via the library); check
// forces installs off.
func run(ctx context.Context, path string, opts runOpts) error {
	logger := loggerFromContext(ctx)

	man, err := manifest.Load(path)
	if err != nil {
		return err
	}

	mo := man.Options()
	if opts.indexURL != "" {
		mo.IndexURL = opts.indexURL
	}
	if len(opts.extraIndexURLs) > 0 {
		mo.ExtraIndexURLs = opts.extraIndexURLs
	}
	if len(opts.trustedHosts) > 0 {
		mo.TrustedHosts = opts.trustedHosts
	}
	mo.Logger = func(format string, args ...any) { logger.Debugf(format, args...) }

	python := opts.python
	if python == "" {
		python = man.Install.Python
	}

	mo.InstallIfMissing = opts.install
	if opts.install {
		mo.Installer = installer.NewPip(python)
	}

	mgr := deps.Begin(pyenv.New(python), mo)
	man.Apply(mgr)
	logger.Debugf("manager run %s for %s", mgr.RunID(), path)

	pr := newProgress(logger)
	var sp *spinner
	if opts.install && logger.GetLevel() > charmlog.DebugLevel {
		sp = startSpinner(ctx, "resolving dependencies")
	}
	bindings, closeErr := mgr.Close(ctx)
	if sp != nil {
		sp.stop()
	}

	printSummary(mgr.Packages())
	printBindings(bindings)
	printDetail("run %s", mgr.RunID())

	if closeErr != nil {
		var unsat *deps.UnsatisfiedError
		if errors.As(closeErr, &unsat) {
			for _, f := range unsat.Failures {
				printError("%s: %v", f.Spec.Requirement(), f.Err)
			}
		}
		return closeErr
	}

	pr.done(fmt.Sprintf("Resolved %d packages", len(mgr.Packages())))
	return nil
}
