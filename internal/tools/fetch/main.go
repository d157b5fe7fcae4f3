// Command fetch downloads a runtime artifact into a plugin directory without
// going through the interactive launcher.
//
//	go run ./internal/tools/fetch <language> <url> [sha256]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caffeineduck/rchidrun/installer"
	"github.com/caffeineduck/rchidrun/registry"
	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/charmbracelet/log"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: fetch <language> <url> [sha256]")
		os.Exit(1)
	}

	req := installer.FromURL{Language: os.Args[1], URL: os.Args[2]}
	if len(os.Args) == 4 {
		req.SHA256 = os.Args[3]
	}

	root := os.Getenv("RCHIDRUN_ROOT")
	if root == "" {
		var err error
		if root, err = sdk.DefaultRoot(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	layout := sdk.New(root)

	if layout.Installed(req.Language) {
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "fetch", Level: log.InfoLevel})
	inst := installer.New(layout, registry.NewDefault(), installer.WithLogger(logger))
	if err := inst.Install(context.Background(), req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("fetched", "language", req.Language, "path", layout.ArtifactPath(req.Language))
}
