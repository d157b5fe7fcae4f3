package executor

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures the Executor at creation time.
type Option func(*executorConfig)

type executorConfig struct {
	diskCache        bool
	cacheDir         string
	memoryLimitPages uint32 // Max memory pages (each page = 64KB), 0 = default (4GB)
	timeout          time.Duration
	stdin            io.Reader
	stdout           io.Writer
	stderr           io.Writer
	logger           *log.Logger
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithDiskCache enables a persistent compilation cache so repeated runs of the
// same runtime skip compilation. Optionally provide a custom directory;
// otherwise uses ~/.cache/rchidrun or XDG_CACHE_HOME/rchidrun.
//
// Examples:
//
//	executor.New(layout, executor.WithDiskCache())            // default dir
//	executor.New(layout, executor.WithDiskCache("/tmp/cache")) // custom dir
func WithDiskCache(dir ...string) Option {
	return func(c *executorConfig) {
		c.diskCache = true
		if len(dir) > 0 && dir[0] != "" {
			c.cacheDir = dir[0]
		}
	}
}

// WithMemoryLimit sets the maximum memory available to the runtime.
// Each page is 64KB. Default is 0 (no limit, up to 4GB).
func WithMemoryLimit(pages uint32) Option {
	return func(c *executorConfig) {
		c.memoryLimitPages = pages
	}
}

// WithTimeout bounds a run. Zero, the default, means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *executorConfig) {
		c.timeout = d
	}
}

// WithStdin replaces the guest's standard input (default os.Stdin).
func WithStdin(r io.Reader) Option {
	return func(c *executorConfig) {
		c.stdin = r
	}
}

// WithStdout replaces the guest's standard output (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(c *executorConfig) {
		c.stdout = w
	}
}

// WithStderr replaces the guest's standard error (default os.Stderr).
func WithStderr(w io.Writer) Option {
	return func(c *executorConfig) {
		c.stderr = w
	}
}

// WithLogger sets the logger for execution diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *executorConfig) {
		c.logger = l
	}
}

// Memory limit constants for convenience.
const (
	MemoryLimit1MB   uint32 = 16    // 1 MB
	MemoryLimit16MB  uint32 = 256   // 16 MB
	MemoryLimit64MB  uint32 = 1024  // 64 MB
	MemoryLimit256MB uint32 = 4096  // 256 MB
	MemoryLimit1GB   uint32 = 16384 // 1 GB
)

// ParseMemoryLimit converts 1mb, 16mb, 64mb, 256mb or 1gb to pages.
// Anything else, including "", returns 0 (no limit).
func ParseMemoryLimit(s string) uint32 {
	switch strings.ToLower(s) {
	case "1mb":
		return MemoryLimit1MB
	case "16mb":
		return MemoryLimit16MB
	case "64mb":
		return MemoryLimit64MB
	case "256mb":
		return MemoryLimit256MB
	case "1gb":
		return MemoryLimit1GB
	default:
		return 0
	}
}
