package executor

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/screenwire/screenwire/internal/address"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
)

// injectNeeds fills the wire-tagged dependency slots of a screen struct from
// provided service instances.
func (e *Executor) injectNeeds(ctx context.Context, node *dag.Node, screenDef *config.ScreenDefinition, screenStruct any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Injecting dependency slots.", "screen", node.ID)

	screenValue := reflect.ValueOf(screenStruct)
	if screenValue.Kind() != reflect.Pointer || screenValue.IsNil() {
		return fmt.Errorf("screen constructor for '%s' must return a non-nil struct pointer", node.ScreenConfig.ScreenType)
	}
	screenValue = screenValue.Elem()
	if screenValue.Kind() != reflect.Struct {
		return fmt.Errorf("screen constructor for '%s' must return a struct pointer", node.ScreenConfig.ScreenType)
	}
	screenType := screenValue.Type()

	needsMap := node.ScreenConfig.Needs

	for i := 0; i < screenValue.NumField(); i++ {
		field := screenType.Field(i)
		fieldLogger := logger.With("screen", node.ID, "go_field", field.Name)

		tag := field.Tag.Get("wire")
		if tag == "" || tag == "-" {
			fieldLogger.Debug("Field has no 'wire' tag, skipping.")
			continue
		}

		parts := strings.Split(tag, ",")
		slotName := parts[0]
		fieldLogger.Debug("Processing dependency slot.", "tag", tag, "slot", slotName)

		serviceExpr, ok := needsMap[slotName]
		if !ok {
			// Absence is legal here; the ready gate decides whether the
			// slot was allowed to stay empty.
			fieldLogger.Debug("No wiring entry for slot, leaving it empty.", "slot", slotName)
			continue
		}

		vars := serviceExpr.Variables()
		if len(vars) != 1 {
			return fmt.Errorf("needs entry '%s' must be a direct reference to one service", slotName)
		}
		addr, ok := address.FromTraversal(vars[0])
		if !ok || addr.Kind != address.KindService {
			return fmt.Errorf("needs entry '%s' must reference a service as service.<type>.<name>", slotName)
		}

		if needsDef, declared := screenDef.Needs[slotName]; declared && needsDef.ServiceType != addr.Type {
			return fmt.Errorf("slot '%s' is declared for service type '%s' but wired to '%s'", slotName, needsDef.ServiceType, addr.Type)
		}

		serviceID := addr.String()
		fieldLogger.Debug("Resolved service dependency.", "service_id", serviceID)

		instance, found := e.serviceInstances.Load(serviceID)
		if !found {
			return fmt.Errorf("screen '%s' requires service '%s', which has not been provided", node.ID, serviceID)
		}

		instanceType := reflect.TypeOf(instance)
		fieldType := field.Type

		if fieldType.Kind() == reflect.Interface {
			if !instanceType.Implements(fieldType) {
				err := fmt.Errorf("type mismatch for '%s': service of type %v does not implement required interface %v", slotName, instanceType, fieldType)
				fieldLogger.Error("Dependency injection failed.", "error", err)
				return err
			}
		} else if !instanceType.AssignableTo(fieldType) {
			err := fmt.Errorf("type mismatch for '%s': service of type %v is not assignable to field of type %v", slotName, instanceType, fieldType)
			fieldLogger.Error("Dependency injection failed.", "error", err)
			return err
		}

		fieldLogger.Debug("Injecting service dependency.")
		screenValue.Field(i).Set(reflect.ValueOf(instance))
	}

	logger.Debug("Finished injecting dependency slots.", "screen", node.ID)
	return nil
}
