package resource

import (
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestScopeReleasesTempFiles(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	scope := g.NewScope()

	tf, err := scope.TempFile(".mp3")
	if err != nil {
		t.Fatalf("acquire temp file: %v", err)
	}
	if err := os.WriteFile(tf.Path, []byte("data"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if g.TrackedFiles() != 1 {
		t.Fatalf("expected 1 tracked file, got %d", g.TrackedFiles())
	}

	scope.Close()

	if g.TrackedFiles() != 0 {
		t.Fatalf("expected 0 tracked files after close, got %d", g.TrackedFiles())
	}
	if _, err := os.Stat(tf.Path); !os.IsNotExist(err) {
		t.Fatalf("temp file should be deleted, stat err: %v", err)
	}
}

func TestScopeCloseIdempotent(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	scope := g.NewScope()
	if _, err := scope.TempFile(".txt"); err != nil {
		t.Fatalf("acquire temp file: %v", err)
	}
	scope.Close()
	scope.Close()
	if g.TrackedFiles() != 0 {
		t.Fatalf("expected 0 tracked files, got %d", g.TrackedFiles())
	}
}

func TestReleaseMissingFileNotFatal(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	tf, err := g.AcquireTempFile(".txt")
	if err != nil {
		t.Fatalf("acquire temp file: %v", err)
	}
	if err := os.Remove(tf.Path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	g.Release(tf)
	if g.TrackedFiles() != 0 {
		t.Fatalf("expected 0 tracked files, got %d", g.TrackedFiles())
	}
}

func TestKeepAliveFiresAndStops(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	var calls atomic.Int32
	s := g.SpawnKeepAlive(func() { calls.Add(1) }, 10*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 calls, got %d", calls.Load())
	}

	g.Cancel(s)
	if g.TrackedSignals() != 0 {
		t.Fatalf("expected 0 tracked signals, got %d", g.TrackedSignals())
	}
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	// One in-flight tick may land after cancel, but the loop must stop.
	if calls.Load() > after+1 {
		t.Fatalf("keep-alive still running after cancel")
	}
}

func TestSignalCancelIdempotent(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	s := g.SpawnKeepAlive(func() {}, time.Minute)
	g.Cancel(s)
	g.Cancel(s)
	s.Cancel()
	g.Cancel(nil)
}

func TestOverMemoryBudget(t *testing.T) {
	g := NewGovernor(t.TempDir(), 0, nil)
	if g.OverMemoryBudget() {
		t.Fatalf("zero ceiling must disable the gate")
	}

	// Any live process uses more than one byte.
	tight := NewGovernor(t.TempDir(), 1, nil)
	if tight.MemoryUsageBytes() > 0 && !tight.OverMemoryBudget() {
		t.Fatalf("1-byte ceiling should be exceeded")
	}
}
