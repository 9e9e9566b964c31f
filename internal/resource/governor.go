// Package resource tracks the temporary files and background signals created
// while a content unit is being processed, and guarantees their release on
// every exit path. It also exposes an advisory process-memory gauge used to
// gate heavy extraction work.
package resource

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/process"
)

// Governor owns the process-wide sets of in-flight temp files and keep-alive
// signals. Both sets support concurrent add/remove from multiple in-flight
// requests.
type Governor struct {
	mu      sync.Mutex
	files   map[string]struct{}
	signals map[*Signal]struct{}

	tempDir    string
	memCeiling uint64
	proc       *process.Process
	logger     *slog.Logger
}

// TempFile is an ownership token for one temporary file. It is owned by the
// extraction call that acquired it and must be released through the governor.
type TempFile struct {
	Path string
}

// NewGovernor builds a governor. tempDir may be empty to use the system
// default; memCeilingBytes of 0 disables the memory gate.
func NewGovernor(tempDir string, memCeilingBytes uint64, logger *slog.Logger) *Governor {
	if logger == nil {
		logger = slog.Default()
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Warn("memory gauge unavailable", "err", err)
		proc = nil
	}
	return &Governor{
		files:      make(map[string]struct{}),
		signals:    make(map[*Signal]struct{}),
		tempDir:    tempDir,
		memCeiling: memCeilingBytes,
		proc:       proc,
		logger:     logger,
	}
}

// AcquireTempFile reserves a fresh temp file path with the given suffix. The
// path is registered in the tracked set before the file is first written.
func (g *Governor) AcquireTempFile(suffix string) (*TempFile, error) {
	dir := g.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "simplelearn-"+uuid.NewString()+suffix)
	g.mu.Lock()
	g.files[path] = struct{}{}
	g.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		g.forgetFile(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		g.logger.Warn("close temp file", "path", path, "err", err)
	}
	return &TempFile{Path: path}, nil
}

// Release deletes the temp file if it still exists and removes it from the
// tracked set. Deletion failures are logged, not fatal.
func (g *Governor) Release(tf *TempFile) {
	if tf == nil {
		return
	}
	if err := os.Remove(tf.Path); err != nil && !os.IsNotExist(err) {
		g.logger.Warn("remove temp file", "path", tf.Path, "err", err)
	}
	g.forgetFile(tf.Path)
}

func (g *Governor) forgetFile(path string) {
	g.mu.Lock()
	delete(g.files, path)
	g.mu.Unlock()
}

// TrackedFiles returns the number of temp files currently tracked.
func (g *Governor) TrackedFiles() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.files)
}

// MemoryUsageBytes returns the resident set size of the process, or 0 when
// the gauge is unavailable.
func (g *Governor) MemoryUsageBytes() uint64 {
	if g.proc == nil {
		return 0
	}
	info, err := g.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}

// OverMemoryBudget reports whether resident memory exceeds the configured
// ceiling. This is a best-effort circuit breaker, not an admission-control
// guarantee against concurrent overcommit.
func (g *Governor) OverMemoryBudget() bool {
	if g.memCeiling == 0 {
		return false
	}
	used := g.MemoryUsageBytes()
	return used > 0 && used > g.memCeiling
}

// MemoryCeilingBytes returns the configured ceiling.
func (g *Governor) MemoryCeilingBytes() uint64 {
	return g.memCeiling
}

// Scope collects the resources acquired for one request so a single Close
// releases everything that request left behind, whatever the exit path.
type Scope struct {
	g       *Governor
	mu      sync.Mutex
	files   []*TempFile
	signals []*Signal
	closed  bool
}

// NewScope starts a per-request resource scope.
func (g *Governor) NewScope() *Scope {
	return &Scope{g: g}
}

// TempFile acquires a temp file owned by this scope.
func (sc *Scope) TempFile(suffix string) (*TempFile, error) {
	tf, err := sc.g.AcquireTempFile(suffix)
	if err != nil {
		return nil, err
	}
	sc.mu.Lock()
	sc.files = append(sc.files, tf)
	sc.mu.Unlock()
	return tf, nil
}

// KeepAlive starts a keep-alive signal owned by this scope.
func (sc *Scope) KeepAlive(fn func(), interval time.Duration) *Signal {
	s := sc.g.SpawnKeepAlive(fn, interval)
	sc.mu.Lock()
	sc.signals = append(sc.signals, s)
	sc.mu.Unlock()
	return s
}

// Close cancels every signal and releases every temp file this scope owns.
// Safe to call more than once and from a defer on any exit path.
func (sc *Scope) Close() {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return
	}
	sc.closed = true
	files := sc.files
	signals := sc.signals
	sc.files = nil
	sc.signals = nil
	sc.mu.Unlock()

	for _, s := range signals {
		sc.g.Cancel(s)
	}
	for _, tf := range files {
		sc.g.Release(tf)
	}
}
