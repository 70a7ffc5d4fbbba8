package app

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
	"github.com/screenwire/screenwire/internal/executor"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	runID := uuid.New().String()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	logger.Debug("Building dependency graph from config model...")
	graph, err := dag.Build(ctx, a.config)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", len(graph.Nodes))

	logger.Info("Screen handlers registered:", "count", len(a.registry.ScreenHandlerRegistry), "keys", reflect.ValueOf(a.registry.ScreenHandlerRegistry).MapKeys())
	logger.Info("Service handlers registered:", "count", len(a.registry.ServiceHandlerRegistry), "keys", reflect.ValueOf(a.registry.ServiceHandlerRegistry).MapKeys())

	if appConfig.CheckOnly {
		logger.Info("✅ Wiring check passed.", "screens", len(a.config.Wiring.Screens), "services", len(a.config.Wiring.Services))
		return nil
	}

	if len(graph.Nodes) > 0 {
		logger.Debug("Executor starting run.")
		logger.Info("🚀 Starting concurrent execution...")
		exec := executor.New(graph, appConfig.WorkerCount, a.registry, a.converter)
		if err := exec.Run(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		logger.Info("🏁 Execution finished.")
	} else {
		logger.Warn("No nodes found in graph, execution not required.")
	}

	logger.Debug("App.Run method finished.")
	return nil
}
