package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/caffeineduck/rchidrun/executor"
	"github.com/caffeineduck/rchidrun/installer"
	"github.com/caffeineduck/rchidrun/launcher"
	"github.com/caffeineduck/rchidrun/prompt"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <language> <script>",
		Short: "Run a script with a language runtime",
		Long: `Run a script with the WebAssembly runtime installed for a language.

If no runtime is installed yet:
  - known languages (see 'rchidrun sdk-list') are installed through Wasmer
    after you confirm
  - any other language asks for a URL to download runtime.wasm from

The runtime receives the script path as its only argument and inherits
stdin, stdout and stderr.`,
		Example: `  rchidrun run python hello.py
  rchidrun run --yes ruby script.rb`,
		Args: cobra.ExactArgs(2),
		RunE: runRun,
	}
	cmd.Flags().BoolP("yes", "y", false, "Install missing registry runtimes without asking")
	cmd.Flags().Duration("timeout", 0, "Execution timeout (0 = none)")
	cmd.Flags().String("memory", "", "Memory limit: 1mb, 16mb, 64mb, 256mb, 1gb (default: none)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	language, script := args[0], args[1]
	yes, _ := cmd.Flags().GetBool("yes")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	l := launcher.New(a.layout, a.registry, a.newInstaller(), &lazyRunner{app: a, cmd: cmd, timeout: timeout}, newPrompter(cmd),
		launcher.WithOutput(cmd.OutOrStdout()),
		launcher.WithLogger(a.logger),
		launcher.WithAssumeYes(yes),
		launcher.WithManagerName(managerLabel(a.cfg.PackageManager)),
	)
	err = l.Run(cmd.Context(), language, script)
	if errors.Is(err, launcher.ErrAborted) {
		return &exitError{code: exitAborted, err: err}
	}
	return err
}

// lazyRunner creates the executor only once a runtime is ready, so a
// declined install leaves the compilation cache untouched.
type lazyRunner struct {
	app     *app
	cmd     *cobra.Command
	timeout time.Duration
}

func (r *lazyRunner) Run(ctx context.Context, language, script string) error {
	exec, err := r.app.newExecutor(r.cmd, r.timeout)
	if err != nil {
		return err
	}
	defer exec.Close()
	return exec.Run(ctx, language, script)
}

func (a *app) newExecutor(cmd *cobra.Command, timeout time.Duration) (*executor.Executor, error) {
	opts := []executor.Option{
		executor.WithStdin(cmd.InOrStdin()),
		executor.WithStdout(cmd.OutOrStdout()),
		executor.WithStderr(cmd.ErrOrStderr()),
		executor.WithLogger(a.logger),
		executor.WithTimeout(timeout),
	}
	if a.cfg.Cache {
		opts = append(opts, executor.WithDiskCache(a.cfg.CacheDir))
	}
	if pages := executor.ParseMemoryLimit(a.cfg.MemoryLimit); pages > 0 {
		opts = append(opts, executor.WithMemoryLimit(pages))
	}
	return executor.New(a.layout, opts...)
}

func (a *app) newInstaller() *installer.Installer {
	return installer.New(a.layout, a.registry,
		installer.WithPackageManager(installer.NewCommand(a.cfg.PackageManager)),
		installer.WithDownloadTimeout(a.cfg.DownloadTimeout),
		installer.WithLogger(a.logger),
	)
}

// newPrompter reads from the terminal for real runs and from the command's
// input when it has been redirected.
func newPrompter(cmd *cobra.Command) prompt.Prompter {
	if cmd.InOrStdin() == os.Stdin {
		return prompt.New()
	}
	return prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout())
}

func managerLabel(name string) string {
	if name == "" || name == installer.DefaultPackageManager {
		return "Wasmer"
	}
	return name
}
