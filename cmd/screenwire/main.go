package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/screenwire/screenwire/internal/app"
	"github.com/screenwire/screenwire/internal/cli"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/hclcfg"
	"github.com/screenwire/screenwire/internal/yamlcfg"
)

// main is the entrypoint for the screenwire application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here and hand
	// the cause back to main as an ordinary error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	screenwireApp := app.NewApp(outW, appConfig, loaderForPath(appConfig.WiringPath))

	return screenwireApp.Run(context.Background(), appConfig)
}

// loaderForPath picks the configuration loader matching the wiring file's
// format. YAML wiring expects the manifest path to hold YAML manifests too.
func loaderForPath(path string) config.Loader {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	default:
		return hclcfg.NewLoader()
	}
}
