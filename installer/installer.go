// Package installer acquires language runtimes, either through an external
// package manager or by downloading them from a URL.
//
// Installs overwrite the existing artifact for a language. There is no
// locking: two processes installing the same language race.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/caffeineduck/rchidrun/registry"
	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/charmbracelet/log"
)

var (
	ErrPackageManagerUnavailable = errors.New("package manager unavailable")
	ErrInstallFailed             = errors.New("install failed")
	ErrDownloadFailed            = errors.New("download failed")
	ErrFilesystem                = errors.New("filesystem error")
	ErrChecksumMismatch          = errors.New("checksum mismatch")
)

// Installer writes runtime artifacts into an SDK layout.
type Installer struct {
	layout   sdk.Layout
	registry *registry.Registry
	pm       PackageManager
	client   *http.Client
	logger   *log.Logger
}

// New creates an Installer for the given layout and registry.
func New(layout sdk.Layout, reg *registry.Registry, opts ...Option) *Installer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pm := cfg.packageManager
	if pm == nil {
		pm = NewCommand(DefaultPackageManager)
	}
	client := cfg.client
	if client == nil {
		client = &http.Client{Timeout: cfg.downloadTimeout}
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Installer{
		layout:   layout,
		registry: reg,
		pm:       pm,
		client:   client,
		logger:   logger,
	}
}

// Install dispatches a request to its strategy. On success the artifact for
// the request's language exists at its layout path.
func (i *Installer) Install(ctx context.Context, req Request) error {
	if req != nil {
		if err := sdk.ValidateLanguage(req.language()); err != nil {
			return err
		}
	}

	switch r := req.(type) {
	case FromRegistry:
		return i.installFromRegistry(ctx, r)
	case FromURL:
		return i.installFromURL(ctx, r)
	default:
		return fmt.Errorf("unknown install request %T", req)
	}
}

func (i *Installer) installFromRegistry(ctx context.Context, r FromRegistry) error {
	pkg, err := i.registry.Lookup(r.Language)
	if err != nil {
		return err
	}

	dir := i.layout.Dir(r.Language)
	cleanup, err := prepareDir(dir)
	if err != nil {
		return err
	}

	i.logger.Debug("installing from registry", "language", r.Language, "package", pkg, "dir", dir)
	if err := i.pm.Install(ctx, pkg, dir); err != nil {
		cleanup()
		return err
	}

	if !i.layout.Installed(r.Language) {
		cleanup()
		return fmt.Errorf("%w: %s did not produce %s", ErrInstallFailed, pkg, i.layout.ArtifactPath(r.Language))
	}
	return nil
}

// prepareDir creates dir and returns a func that removes it again if this
// call created it and it is still empty.
func prepareDir(dir string) (func(), error) {
	_, statErr := os.Stat(dir)
	created := os.IsNotExist(statErr)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrFilesystem, dir, err)
	}

	return func() {
		if created {
			// Remove fails on non-empty dirs, leaving partial installs for inspection.
			os.Remove(dir)
		}
	}, nil
}
