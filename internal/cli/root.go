package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rundeps/pkg/buildinfo"
	"github.com/matzehuels/rundeps/pkg/observability"
)

// Execute runs the rundeps CLI and returns an error if any command fails.
//
// The function sets up the root command with its subcommands (ensure,
// check), configures logging based on the --verbose flag, and executes the
// command tree. The logger is attached to the context and accessible to
// all commands via loggerFromContext; install events are mirrored onto it
// through the observability hooks.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "rundeps",
		Short:        "rundeps installs and resolves script dependencies at runtime",
		Long:         `rundeps reads a rundeps.toml manifest declaring the Python packages a script depends on, installs the missing ones through pip, and reports the resolved import bindings.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			observability.SetInstallHooks(&logHooks{logger: logger})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newEnsureCmd())
	root.AddCommand(newCheckCmd())

	return root.ExecuteContext(ctx)
}
