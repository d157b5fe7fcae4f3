package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caffeineduck/rchidrun/config"
	"github.com/caffeineduck/rchidrun/launcher"
	"github.com/caffeineduck/rchidrun/registry"
	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags.
var Version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rchidrun",
		Short: "Run scripts with WebAssembly language runtimes",
		Long: TitleStyle.Render("rchidrun") + ` - run scripts in any language through WebAssembly.

Each language is backed by an interpreter compiled to WebAssembly and stored
under ~/.rchidrun/plugins/<language>/runtime.wasm. Missing runtimes are
installed on first use, through Wasmer for known languages or from a URL
you provide for anything else.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.rchidrun/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "Runtime directory (default: ~/.rchidrun/plugins)")
	rootCmd.PersistentFlags().String("package-manager", "", "Package manager executable (default: wasmer)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable compilation cache")

	rootCmd.AddCommand(newRunCmd(), newSDKListCmd(), newSDKCmd(), newCacheCmd())
	return rootCmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func handleError(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, launcher.ErrAborted) {
		fmt.Fprintln(w, WarningStyle.Render("Aborted:")+" installation declined.")
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// app bundles the configuration shared by all commands.
type app struct {
	cfg      config.Config
	layout   sdk.Layout
	registry *registry.Registry
	logger   *log.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "rchidrun",
		Level:  log.WarnLevel,
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("configuration loaded", "root", cfg.Root, "package_manager", cfg.PackageManager)

	return &app{
		cfg:      cfg,
		layout:   cfg.Layout(),
		registry: cfg.Registry(),
		logger:   logger,
	}, nil
}
