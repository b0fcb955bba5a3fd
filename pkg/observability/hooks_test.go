package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingHooks struct {
	probes    int
	starts    int
	completes int
	lastPkg   string
	lastErr   error
}

func (r *recordingHooks) OnProbe(_ context.Context, pkg string, _ bool) {
	r.probes++
	r.lastPkg = pkg
}

func (r *recordingHooks) OnInstallStart(_ context.Context, pkg string) {
	r.starts++
	r.lastPkg = pkg
}

func (r *recordingHooks) OnInstallComplete(_ context.Context, pkg string, _ time.Duration, err error) {
	r.completes++
	r.lastPkg = pkg
	r.lastErr = err
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	h := Installs()
	if _, ok := h.(NoopInstallHooks); !ok {
		t.Fatalf("default hooks = %T, want NoopInstallHooks", h)
	}

	// Must not panic.
	h.OnProbe(context.Background(), "requests", true)
	h.OnInstallStart(context.Background(), "requests")
	h.OnInstallComplete(context.Background(), "requests", time.Second, nil)
}

func TestSetInstallHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetInstallHooks(rec)

	ctx := context.Background()
	Installs().OnProbe(ctx, "pymongo", false)
	Installs().OnInstallStart(ctx, "pymongo")
	Installs().OnInstallComplete(ctx, "pymongo", time.Millisecond, errors.New("boom"))

	if rec.probes != 1 || rec.starts != 1 || rec.completes != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", rec.probes, rec.starts, rec.completes)
	}
	if rec.lastPkg != "pymongo" {
		t.Errorf("lastPkg = %q, want %q", rec.lastPkg, "pymongo")
	}
	if rec.lastErr == nil {
		t.Error("lastErr not recorded")
	}
}

func TestSetInstallHooksIgnoresNil(t *testing.T) {
	t.Cleanup(Reset)

	SetInstallHooks(nil)
	if Installs() == nil {
		t.Fatal("Installs() returned nil after SetInstallHooks(nil)")
	}
}
