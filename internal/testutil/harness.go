package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/screenwire/screenwire/internal/app"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/hclcfg"
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/screenwire/screenwire/internal/yamlcfg"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of a system test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// SetupAppTest creates a new app instance for system testing. The loader is
// chosen from the wiring path's extension, matching the real entrypoint.
func SetupAppTest(t *testing.T, appConfig *app.Config, modules ...registry.Module) (*app.App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	if appConfig.WorkerCount == 0 {
		appConfig.WorkerCount = 4
	}

	var loader config.Loader = hclcfg.NewLoader()
	switch filepath.Ext(appConfig.WiringPath) {
	case ".yaml", ".yml":
		loader = yamlcfg.NewLoader()
	}
	testApp := app.NewApp(logBuffer, appConfig, loader, modules...)

	t.Cleanup(func() {
		if os.Getenv("SCREENWIRE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}

// RunWiringTest provides a standardized harness for running system tests
// using a default background context.
func RunWiringTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunWiringTestWithContext(context.Background(), t, files, modules...)
}

// RunWiringTestWithContext writes the given files below a temporary root,
// builds an app over them, and runs it to completion. Startup panics are
// recovered and reported through the result's Err field.
//
// File names are relative paths; "manifests/" and "wiring/" are created up
// front so tests can split their config the way a real project would, but
// any block may appear in any file.
func RunWiringTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	manifestDir := filepath.Join(tmpDir, "manifests")
	wiringDir := filepath.Join(tmpDir, "wiring")
	require.NoError(t, os.Mkdir(manifestDir, 0755))
	require.NoError(t, os.Mkdir(wiringDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		WiringPath:   wiringDir,
		ManifestPath: manifestDir,
		LogLevel:     "debug",
		LogFormat:    "text",
		WorkerCount:  4,
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("SCREENWIRE_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hclcfg.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			App:       nil,
		}
	}

	runErr := testApp.Run(ctx, appConfig)

	if os.Getenv("SCREENWIRE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
