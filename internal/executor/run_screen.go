package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
	"github.com/screenwire/screenwire/wire"
)

// runScreenNode drives a screen instance to its ready state.
func (e *Executor) runScreenNode(ctx context.Context, node *dag.Node) error {
	logger := ctxlog.FromContext(ctx).With("screen", node.ID)
	logger.Info("▶️ Preparing screen")

	screenDef, ok := e.registry.ScreenDefinitionRegistry[node.ScreenConfig.ScreenType]
	if !ok {
		return fmt.Errorf("unknown screen type '%s'", node.ScreenConfig.ScreenType)
	}
	handlerName := screenDef.Lifecycle.OnReady
	registeredHandler, ok := e.registry.ScreenHandlerRegistry[handlerName]
	if !ok {
		return fmt.Errorf("handler '%s' not registered", handlerName)
	}

	if registeredHandler.NewScreen == nil {
		return fmt.Errorf("screen constructor for handler '%s' is nil", handlerName)
	}
	screenStruct := registeredHandler.NewScreen()

	var paramsStruct any
	if registeredHandler.NewParams != nil {
		paramsStruct = registeredHandler.NewParams()
	}
	if paramsStruct != nil {
		logger.Debug("Decoding screen params.")
		// Params are static literals, so no evaluation context is supplied.
		if err := e.converter.DecodeBody(ctx, paramsStruct, node.ScreenConfig.Params, screenDef.Params, nil); err != nil {
			return fmt.Errorf("failed to decode params for screen '%s': %w", node.ID, err)
		}
	}

	if err := e.injectNeeds(ctx, node, screenDef, screenStruct); err != nil {
		return err
	}

	// The ready gate: every required dependency slot must hold a value
	// before the handler may observe the screen.
	logger.Debug("Verifying dependency slots.")
	if err := wire.CheckStruct(screenStruct); err != nil {
		return err
	}

	logger.Debug("Calling screen ready handler.", "handler", handlerName)
	handlerFunc := reflect.ValueOf(registeredHandler.OnReadyFn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(screenStruct)}
	if paramsStruct == nil {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(2)))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(paramsStruct))
	}
	results := handlerFunc.Call(callArgs)
	if errResult := results[0].Interface(); errResult != nil {
		return errResult.(error)
	}

	logger.Info("✅ Screen ready")
	return nil
}
