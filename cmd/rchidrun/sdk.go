package main

import (
	"fmt"
	"io"

	"github.com/caffeineduck/rchidrun/installer"
	"github.com/spf13/cobra"
)

func newSDKListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sdk-list",
		Short: "List installed SDKs and supported languages",
		Args:  cobra.NoArgs,
		RunE:  runSDKList,
	}
}

func newSDKCmd() *cobra.Command {
	sdkCmd := &cobra.Command{
		Use:   "sdk",
		Short: "Manage installed language runtimes",
	}

	listCmd := newSDKListCmd()
	listCmd.Use = "list"

	installCmd := &cobra.Command{
		Use:   "install <language>",
		Short: "Install a language runtime",
		Long: `Install a language runtime without running anything.

Known languages are installed through the package manager. Use --url to
download runtime.wasm directly, optionally verified with --sha256.`,
		Args: cobra.ExactArgs(1),
		RunE: runSDKInstall,
	}
	installCmd.Flags().String("url", "", "Download the runtime from this URL")
	installCmd.Flags().String("sha256", "", "Expected SHA-256 of the download (hex)")

	removeCmd := &cobra.Command{
		Use:   "remove <language>...",
		Short: "Remove installed language runtimes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSDKRemove,
	}

	sdkCmd.AddCommand(listCmd, installCmd, removeCmd)
	return sdkCmd
}

func runSDKList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, HeadingStyle.Render("Installed SDKs:"))
	for _, name := range a.layout.ListInstalled() {
		fmt.Fprintf(out, "- %s\n", name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, HeadingStyle.Render(fmt.Sprintf("Supported languages (via %s):", managerLabel(a.cfg.PackageManager))))
	writeSupported(out, a)
	return nil
}

func writeSupported(out io.Writer, a *app) {
	for _, e := range a.registry.Entries() {
		fmt.Fprintf(out, "- %s %s\n", e.Language, MutedStyle.Render("("+e.Package+")"))
	}
}

func runSDKInstall(cmd *cobra.Command, args []string) error {
	language := args[0]
	url, _ := cmd.Flags().GetString("url")
	sum, _ := cmd.Flags().GetString("sha256")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	var req installer.Request = installer.FromRegistry{Language: language}
	if url != "" {
		req = installer.FromURL{Language: language, URL: url, SHA256: sum}
	} else if sum != "" {
		return fmt.Errorf("--sha256 requires --url")
	}

	if err := a.newInstaller().Install(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s '%s' -> %s\n", SuccessStyle.Render("Installed"), language, a.layout.ArtifactPath(language))
	return nil
}

func runSDKRemove(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	for _, language := range args {
		if err := a.layout.Remove(language); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", language)
	}
	return nil
}
