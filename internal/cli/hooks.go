package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rundeps/pkg/observability"
)

// logHooks bridges observability install events onto the CLI logger.
// Registered once per invocation before any manager runs.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnProbe(_ context.Context, pkg string, satisfied bool) {
	if satisfied {
		h.logger.Debugf("%s already satisfied", pkg)
	} else {
		h.logger.Debugf("%s missing or outdated", pkg)
	}
}

func (h *logHooks) OnInstallStart(_ context.Context, pkg string) {
	h.logger.Infof("Installing %s ...", pkg)
}

func (h *logHooks) OnInstallComplete(_ context.Context, pkg string, d time.Duration, err error) {
	if err != nil {
		h.logger.Errorf("Install of %s failed after %s: %v", pkg, d.Round(time.Millisecond), err)
		return
	}
	h.logger.Infof("Installed %s (%s)", pkg, d.Round(time.Millisecond))
}

var _ observability.InstallHooks = (*logHooks)(nil)
