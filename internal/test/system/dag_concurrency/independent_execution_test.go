package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/screenwire/screenwire/internal/app"
	"github.com/screenwire/screenwire/internal/testutil"
)

// Test for: independent screens are prepared in parallel.
func TestDagConcurrency_IndependentExecution(t *testing.T) {
	// --- Arrange ---
	hcl := `
		screen "sleeper" "a" {
			params {
				id = "a"
			}
		}
		screen "sleeper" "b" {
			params {
				id = "b"
			}
		}
	`
	tempDir := t.TempDir()
	wiringPath := filepath.Join(tempDir, "wiring.hcl")
	if err := os.WriteFile(wiringPath, []byte(hcl), 0600); err != nil {
		t.Fatalf("failed to write hcl file: %v", err)
	}

	sleeperModule := testutil.NewSleeperModule(nil, 100*time.Millisecond)

	appConfig := &app.Config{WiringPath: wiringPath, WorkerCount: 4}
	testApp, _ := testutil.SetupAppTest(t, appConfig, sleeperModule)

	// --- Act ---
	// Run() waits for every node, so the records are complete afterwards.
	runErr := testApp.Run(context.Background(), appConfig)
	if runErr != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", runErr)
	}

	// --- Assert ---
	records := sleeperModule.ExecutionTimes
	assertOverlap(t, "a", "b", records["a"], records["b"])
}
