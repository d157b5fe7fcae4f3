package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultPackageManager is the executable used for registry installs.
const DefaultPackageManager = "wasmer"

// PackageManager materializes a package's runtime into a directory.
type PackageManager interface {
	Install(ctx context.Context, pkg, dir string) error
}

// Command runs an external package manager as
// `<Path> install <package> --to <dir>`.
type Command struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand returns a Command for the named executable, inheriting the
// process's stdout and stderr so the user sees the manager's progress.
func NewCommand(path string) *Command {
	if path == "" {
		path = DefaultPackageManager
	}
	return &Command{Path: path, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Install runs the package manager and blocks until it exits.
func (c *Command) Install(ctx context.Context, pkg, dir string) error {
	if strings.ContainsAny(pkg, ";|&$`") {
		return fmt.Errorf("%w: invalid package name %q", ErrInstallFailed, pkg)
	}

	cmd := exec.CommandContext(ctx, c.Path, "install", pkg, "--to", dir)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with status %d", ErrInstallFailed, c.Path, exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %s: %w", ErrPackageManagerUnavailable, c.Path, err)
}
