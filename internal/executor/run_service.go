package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
)

// runServiceNode handles the provisioning of a stateful service.
func (e *Executor) runServiceNode(ctx context.Context, node *dag.Node) error {
	logger := ctxlog.FromContext(ctx).With("service", node.ID)
	logger.Info("▶️ Providing service")

	serviceType := node.ServiceConfig.ServiceType
	serviceDef, ok := e.registry.ServiceDefinitionRegistry[serviceType]
	if !ok {
		return fmt.Errorf("unknown service type '%s'", serviceType)
	}
	provideHandlerName := serviceDef.Lifecycle.Provide
	releaseHandlerName := serviceDef.Lifecycle.Release

	provideHandler, ok := e.registry.ServiceHandlerRegistry[provideHandlerName]
	if !ok || provideHandler.ProvideFn == nil {
		return fmt.Errorf("provide handler '%s' not registered", provideHandlerName)
	}

	releaseHandler, ok := e.registry.ServiceHandlerRegistry[releaseHandlerName]
	if !ok || releaseHandler.ReleaseFn == nil {
		return fmt.Errorf("release handler '%s' not registered", releaseHandlerName)
	}

	var paramsStruct any
	if provideHandler.NewParams != nil {
		paramsStruct = provideHandler.NewParams()
	}
	if paramsStruct != nil {
		logger.Debug("Decoding service params.")
		// Params are static literals, so no evaluation context is supplied.
		if err := e.converter.DecodeBody(ctx, paramsStruct, node.ServiceConfig.Params, serviceDef.Params, nil); err != nil {
			return fmt.Errorf("failed to decode params for service '%s': %w", node.ID, err)
		}
	}

	logger.Debug("Calling service provide handler.", "handler", provideHandlerName)
	handlerFunc := reflect.ValueOf(provideHandler.ProvideFn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx)}
	if paramsStruct == nil {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(1)))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(paramsStruct))
	}
	results := handlerFunc.Call(callArgs)
	serviceObj, errResult := results[0].Interface(), results[1].Interface()
	if errResult != nil {
		return errResult.(error)
	}

	e.serviceInstances.Store(node.ID, serviceObj)
	e.pushCleanup(node, func() {
		logger.Info("🔥 Releasing service")
		releaseResults := reflect.ValueOf(releaseHandler.ReleaseFn).Call([]reflect.Value{reflect.ValueOf(serviceObj)})
		if releaseErr := releaseResults[0].Interface(); releaseErr != nil {
			logger.Error("Service release failed.", "error", releaseErr)
		}
		e.serviceInstances.Delete(node.ID)
	})

	logger.Info("✅ Service provided")
	return nil
}
