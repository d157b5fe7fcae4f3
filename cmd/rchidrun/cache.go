package main

import (
	"fmt"
	"os"

	"github.com/caffeineduck/rchidrun/executor"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Compilation cache management commands",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the compiled runtime cache",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})
	return cacheCmd
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	dir := a.cfg.CacheDir
	if dir == "" {
		dir = executor.DefaultCacheDir()
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
	return nil
}
