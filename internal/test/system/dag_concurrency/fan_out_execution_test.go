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

// Test for: fan-out execution runs screens in parallel once their shared
// predecessor is done.
func TestDagConcurrency_FanOutExecution(t *testing.T) {
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
			depends_on = ["sleeper.a"]
		}
		screen "sleeper" "c" {
			params {
				id = "c"
			}
			depends_on = ["sleeper.a"]
		}
		screen "sleeper" "d" {
			params {
				id = "d"
			}
			depends_on = ["sleeper.a"]
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
	runErr := testApp.Run(context.Background(), appConfig)
	if runErr != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", runErr)
	}

	// --- Assert ---
	records := sleeperModule.ExecutionTimes
	recordA := records["a"]
	for _, id := range []string{"b", "c", "d"} {
		record := records[id]
		if record == nil {
			t.Fatalf("screen %q never ran", id)
		}
		if record.Start.Before(recordA.End) {
			t.Errorf("screen %q started before its dependency finished", id)
		}
	}
	assertOverlap(t, "b", "c", records["b"], records["c"])
	assertOverlap(t, "c", "d", records["c"], records["d"])
}
