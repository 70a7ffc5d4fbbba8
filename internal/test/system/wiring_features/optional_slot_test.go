package system

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/screenwire/screenwire/internal/app"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/screenwire/screenwire/internal/testutil"
)

// mockOptionalSlotModule is a self-contained module for this test.
type mockOptionalSlotModule struct {
	wg            *sync.WaitGroup
	capturedStore *flagStore
	capturedBadge *flagStore
	mu            sync.Mutex
}

// flagStore is the service instance injected into the screen.
type flagStore struct {
	Enabled bool
}

// promoScreen declares one required and one optional dependency slot.
type promoScreen struct {
	Store *flagStore `wire:"store"`
	Badge *flagStore `wire:"badge,optional"`
}

// Register registers the "flag_store" service and the "promo" screen.
func (m *mockOptionalSlotModule) Register(r *registry.Registry) {
	r.RegisterServiceHandler("ProvideFlagStore", &registry.RegisteredService{
		ProvideFn: func(context.Context, *struct{}) (*flagStore, error) {
			return &flagStore{Enabled: true}, nil
		},
	})
	r.RegisterServiceHandler("ReleaseFlagStore", &registry.RegisteredService{
		ReleaseFn: func(*flagStore) error { return nil },
	})
	r.ServiceDefinitionRegistry["flag_store"] = &config.ServiceDefinition{
		Type: "flag_store",
		Lifecycle: &config.ServiceLifecycle{
			Provide: "ProvideFlagStore",
			Release: "ReleaseFlagStore",
		},
	}

	r.RegisterScreenHandler("OnReadyPromo", &registry.RegisteredScreen{
		NewScreen: func() any { return new(promoScreen) },
		OnReadyFn: func(_ context.Context, screen *promoScreen, _ *struct{}) error {
			m.mu.Lock()
			m.capturedStore = screen.Store
			m.capturedBadge = screen.Badge
			m.mu.Unlock()
			m.wg.Done()
			return nil
		},
	})
	r.ScreenDefinitionRegistry["promo"] = &config.ScreenDefinition{
		Type:      "promo",
		Lifecycle: &config.Lifecycle{OnReady: "OnReadyPromo"},
		Needs: map[string]*config.NeedsDefinition{
			"store": {LocalName: "store", ServiceType: "flag_store"},
			"badge": {LocalName: "badge", ServiceType: "flag_store"},
		},
	}
}

// Test for: an unwired optional slot stays empty without failing the screen.
func TestWiringFeatures_OptionalSlotLeftEmpty(t *testing.T) {
	// --- Arrange ---
	hcl := `
		service "flag_store" "main" {}

		screen "promo" "home" {
			needs {
				store = service.flag_store.main
			}
		}
	`
	tempDir := t.TempDir()
	wiringPath := filepath.Join(tempDir, "wiring.hcl")
	if err := os.WriteFile(wiringPath, []byte(hcl), 0600); err != nil {
		t.Fatalf("failed to write hcl file: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)

	appConfig := &app.Config{WiringPath: wiringPath}
	mockModule := &mockOptionalSlotModule{wg: &wg}
	testApp, _ := testutil.SetupAppTest(t, appConfig, mockModule)

	// --- Act ---
	runErr := testApp.Run(context.Background(), appConfig)
	if runErr != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", runErr)
	}

	wg.Wait()

	// --- Assert ---
	if mockModule.capturedStore == nil {
		t.Error("required slot 'store' should have been injected, but it was nil")
	}
	if mockModule.capturedBadge != nil {
		t.Error("optional slot 'badge' was never wired and should have stayed nil")
	}
}
