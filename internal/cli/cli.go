package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/screenwire/screenwire/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// Environment variables seed the flag defaults, so flags always win.
	envCfg, err := app.ConfigFromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("screenwire", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
ScreenWire - declarative screen dependency wiring and verification.

Usage:
  screenwire [options] [WIRING_PATH]

Arguments:
  WIRING_PATH
    Path to a single wiring file or a directory of wiring files
    (.hcl, .yaml or .yml).

Options:
`)
		flagSet.PrintDefaults()
	}

	wiringFlag := flagSet.String("wiring", "", "Path to the wiring file or directory.")
	wFlag := flagSet.String("w", "", "Path to the wiring file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", envCfg.HealthcheckPort, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", envCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", envCfg.WorkerCount, "Number of concurrent workers for the executor.")
	manifestPathFlag := flagSet.String("manifest-path", envCfg.ManifestPath, "Path to the directory containing screen and service manifests.")
	checkFlag := flagSet.Bool("check", envCfg.CheckOnly, "Validate manifests and wiring, then exit without running.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := envCfg.WiringPath
	if *wiringFlag != "" {
		path = *wiringFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Wiring path determined.", "path", path)

	if path == "" {
		slog.Debug("No wiring path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		WiringPath:      path,
		ManifestPath:    *manifestPathFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
		CheckOnly:       *checkFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
