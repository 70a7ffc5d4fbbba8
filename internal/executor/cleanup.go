package executor

import (
	"context"
	"reflect"

	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
)

// pushCleanup adds a function to the LIFO cleanup stack.
func (e *Executor) pushCleanup(node *dag.Node, f func()) {
	e.cleanupMutex.Lock()
	defer e.cleanupMutex.Unlock()
	e.cleanupStack = append(e.cleanupStack, func() {
		node.Release(f)
	})
}

// executeCleanupStack runs all registered cleanup functions in LIFO order.
func (e *Executor) executeCleanupStack(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	e.cleanupMutex.Lock()
	defer e.cleanupMutex.Unlock()
	logger.Info("Executing cleanup stack...")
	for i := len(e.cleanupStack) - 1; i >= 0; i-- {
		e.cleanupStack[i]()
	}
	e.cleanupStack = nil // Clear the stack
}

// releaseService handles the early release of a service whose last consuming
// screen has finished.
func (e *Executor) releaseService(ctx context.Context, node *dag.Node) {
	logger := ctxlog.FromContext(ctx)
	instance, found := e.serviceInstances.Load(node.ID)
	if !found {
		return
	}

	serviceLogger := logger.With("service", node.ID)
	serviceDef := e.registry.ServiceDefinitionRegistry[node.ServiceConfig.ServiceType]
	if serviceDef == nil || serviceDef.Lifecycle == nil {
		serviceLogger.Warn("Cannot release service early: service definition or lifecycle not found.")
		return
	}

	releaseHandlerName := serviceDef.Lifecycle.Release
	releaseHandler, ok := e.registry.ServiceHandlerRegistry[releaseHandlerName]
	if !ok || releaseHandler.ReleaseFn == nil {
		serviceLogger.Warn("Cannot release service early: release handler not found or is nil.", "handler", releaseHandlerName)
		return
	}

	cleanupFunc := func() {
		serviceLogger.Info("🔥 Releasing service")
		releaseResults := reflect.ValueOf(releaseHandler.ReleaseFn).Call([]reflect.Value{reflect.ValueOf(instance)})
		if releaseErr := releaseResults[0].Interface(); releaseErr != nil {
			serviceLogger.Error("Service release failed.", "error", releaseErr)
		}
		e.serviceInstances.Delete(node.ID)
	}

	node.Release(cleanupFunc)
}
