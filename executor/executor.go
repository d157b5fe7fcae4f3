package executor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/charmbracelet/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// EntryPoint is the export invoked to start a runtime.
const EntryPoint = "_start"

var (
	ErrModuleNotFound    = errors.New("module not found")
	ErrModuleLoad        = errors.New("module load error")
	ErrEntryPointMissing = errors.New("entry point missing")
	ErrExecutionTrap     = errors.New("execution trap")
)

// Executor runs runtime artifacts from an SDK layout.
type Executor struct {
	layout sdk.Layout
	cfg    executorConfig
	cache  wazero.CompilationCache
	logger *log.Logger
}

// New creates an Executor reading artifacts from layout.
func New(layout sdk.Layout, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Executor{layout: layout, cfg: cfg, logger: cfg.logger}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	if cfg.diskCache {
		cacheDir := cfg.cacheDir
		if cacheDir == "" {
			cacheDir = DefaultCacheDir()
		}
		cache, err := wazero.NewCompilationCacheWithDir(cacheDir)
		if err != nil {
			return nil, fmt.Errorf("create disk cache: %w", err)
		}
		e.cache = cache
	}

	return e, nil
}

// Run executes the installed runtime for language with script as its only
// argument. It does not install anything: a missing runtime is
// ErrModuleNotFound.
func (e *Executor) Run(ctx context.Context, language, script string) error {
	if err := sdk.ValidateLanguage(language); err != nil {
		return err
	}
	if !e.layout.Installed(language) {
		return fmt.Errorf("%w: no runtime for %q at %s", ErrModuleNotFound, language, e.layout.ArtifactPath(language))
	}
	return e.RunFile(ctx, e.layout.ArtifactPath(language), script)
}

// RunFile executes the WASM module at path with script as its only argument.
func (e *Executor) RunFile(ctx context.Context, path, script string) error {
	start := time.Now()

	wasm, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrModuleNotFound, path)
		}
		return fmt.Errorf("%w: read %s: %w", ErrModuleLoad, path, err)
	}

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	rt := wazero.NewRuntimeWithConfig(ctx, e.runtimeConfig())
	defer rt.Close(context.Background())

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return fmt.Errorf("instantiate WASI: %w", err)
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return fmt.Errorf("%w: compile %s: %w", ErrModuleLoad, path, err)
	}
	e.logger.Debug("module compiled", "path", path, "elapsed", time.Since(start))

	// Start functions are disabled so the entry point can be located and
	// invoked explicitly.
	moduleConfig := wazero.NewModuleConfig().
		WithStdin(e.cfg.stdin).
		WithStdout(e.cfg.stdout).
		WithStderr(e.cfg.stderr).
		WithArgs(script).
		WithSysWalltime().
		WithSysNanotime().
		WithSysNanosleep().
		WithRandSource(rand.Reader).
		WithStartFunctions().
		WithName("")

	mod, err := rt.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return fmt.Errorf("%w: instantiate %s: %w", ErrModuleLoad, path, err)
	}
	defer mod.Close(context.Background())

	entry := mod.ExportedFunction(EntryPoint)
	if entry == nil {
		return fmt.Errorf("%w: %s does not export %s", ErrEntryPointMissing, path, EntryPoint)
	}
	def := entry.Definition()
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0 {
		return fmt.Errorf("%w: %s has signature %s, want ()", ErrEntryPointMissing, EntryPoint, def.DebugName())
	}

	_, err = entry.Call(ctx)
	e.logger.Debug("module returned", "path", path, "elapsed", time.Since(start), "err", err)
	return e.callError(ctx, err)
}

func (e *Executor) callError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && e.cfg.timeout > 0 {
		return fmt.Errorf("%w: timeout after %v", ErrExecutionTrap, e.cfg.timeout)
	}

	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrExecutionTrap, err)
}

func (e *Executor) runtimeConfig() wazero.RuntimeConfig {
	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if e.cache != nil {
		rtConfig = rtConfig.WithCompilationCache(e.cache)
	}
	if e.cfg.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(e.cfg.memoryLimitPages)
	}
	return rtConfig
}

// Close releases the compilation cache, if any.
func (e *Executor) Close() error {
	if e.cache == nil {
		return nil
	}
	err := e.cache.Close(context.Background())
	e.cache = nil
	return err
}

// DefaultCacheDir returns the on-disk compilation cache directory.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "rchidrun")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "rchidrun")
	}
	return filepath.Join(os.TempDir(), "rchidrun-cache")
}
