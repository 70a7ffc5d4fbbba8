package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ExecutionRecord holds the start and end times for a single screen's ready
// hook. It can be shared across different test packages.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// SleeperModule is a shared, self-contained module for concurrency tests.
// It registers a "sleeper" screen type whose ready hook blocks for a fixed
// duration and records when it ran.
type SleeperModule struct {
	ExecutionTimes map[string]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
	completionChan chan<- string
}

// NewSleeperModule creates a new sleeper module for testing.
func NewSleeperModule(completionChan chan<- string, sleep time.Duration) *SleeperModule {
	return &SleeperModule{
		ExecutionTimes: make(map[string]*ExecutionRecord),
		sleepDuration:  sleep,
		completionChan: completionChan,
	}
}

// Register registers the "sleeper" screen type and its Go handler.
func (m *SleeperModule) Register(r *registry.Registry) {
	type sleeperParams struct {
		ID string `hcl:"id"`
	}

	r.RegisterScreenHandler("OnReadySleeper", &registry.RegisteredScreen{
		NewScreen: func() any { return new(struct{}) },
		NewParams: func() any { return new(sleeperParams) },
		OnReadyFn: func(_ context.Context, _ *struct{}, params *sleeperParams) error {
			startTime := time.Now()
			time.Sleep(m.sleepDuration)
			endTime := time.Now()

			m.mu.Lock()
			m.ExecutionTimes[params.ID] = &ExecutionRecord{Start: startTime, End: endTime}
			m.mu.Unlock()

			if m.completionChan != nil {
				m.completionChan <- params.ID
			}
			return nil
		},
	})
	r.ScreenDefinitionRegistry["sleeper"] = &config.ScreenDefinition{
		Type:      "sleeper",
		Lifecycle: &config.Lifecycle{OnReady: "OnReadySleeper"},
		Params: map[string]*config.ParamDefinition{
			"id": {Name: "id", Type: cty.String},
		},
	}
}
