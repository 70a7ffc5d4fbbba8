package system

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/screenwire/screenwire/internal/app"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/screenwire/screenwire/internal/testutil"
)

// mockCheckSpyModule records whether any lifecycle handler actually ran.
type mockCheckSpyModule struct {
	providedOrReadied *atomic.Bool
}

// auditLog is a placeholder service type for the check-mode wiring.
type auditLog struct{}

// reportScreen consumes the audit log service.
type reportScreen struct {
	Log *auditLog `wire:"log"`
}

// Register registers the "audit_log" service and the "report" screen.
func (m *mockCheckSpyModule) Register(r *registry.Registry) {
	r.RegisterServiceHandler("ProvideAuditLog", &registry.RegisteredService{
		ProvideFn: func(context.Context, *struct{}) (*auditLog, error) {
			m.providedOrReadied.Store(true)
			return &auditLog{}, nil
		},
	})
	r.RegisterServiceHandler("ReleaseAuditLog", &registry.RegisteredService{
		ReleaseFn: func(*auditLog) error { return nil },
	})
	r.ServiceDefinitionRegistry["audit_log"] = &config.ServiceDefinition{
		Type: "audit_log",
		Lifecycle: &config.ServiceLifecycle{
			Provide: "ProvideAuditLog",
			Release: "ReleaseAuditLog",
		},
	}

	r.RegisterScreenHandler("OnReadyReport", &registry.RegisteredScreen{
		NewScreen: func() any { return new(reportScreen) },
		OnReadyFn: func(context.Context, *reportScreen, *struct{}) error {
			m.providedOrReadied.Store(true)
			return nil
		},
	})
	r.ScreenDefinitionRegistry["report"] = &config.ScreenDefinition{
		Type:      "report",
		Lifecycle: &config.Lifecycle{OnReady: "OnReadyReport"},
		Needs: map[string]*config.NeedsDefinition{
			"log": {LocalName: "log", ServiceType: "audit_log"},
		},
	}
}

// Test for: check mode validates the wiring and graph without providing any
// service or readying any screen.
func TestCLI_CheckMode_ValidatesWithoutExecuting(t *testing.T) {
	// --- Arrange ---
	hcl := `
		service "audit_log" "main" {}

		screen "report" "weekly" {
			needs {
				log = service.audit_log.main
			}
		}
	`
	tempDir := t.TempDir()
	wiringPath := filepath.Join(tempDir, "wiring.hcl")
	if err := os.WriteFile(wiringPath, []byte(hcl), 0600); err != nil {
		t.Fatalf("failed to write hcl file: %v", err)
	}

	var providedOrReadied atomic.Bool
	appConfig := &app.Config{WiringPath: wiringPath, CheckOnly: true}
	mockModule := &mockCheckSpyModule{providedOrReadied: &providedOrReadied}
	testApp, logBuffer := testutil.SetupAppTest(t, appConfig, mockModule)

	// --- Act ---
	runErr := testApp.Run(context.Background(), appConfig)

	// --- Assert ---
	if runErr != nil {
		t.Fatalf("app.Run() returned an unexpected error in check mode: %v", runErr)
	}
	if providedOrReadied.Load() {
		t.Error("check mode must not execute any lifecycle handler")
	}
	if !strings.Contains(logBuffer.String(), "Wiring check passed.") {
		t.Errorf("expected the check confirmation in logs, got:\n%s", logBuffer.String())
	}
}
