package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// nilableKinds are the Go kinds a dependency slot may have: only these can
// hold an absent (nil) value, which is what the ready gate checks for.
var nilableKinds = map[reflect.Kind]bool{
	reflect.Ptr:       true,
	reflect.Interface: true,
	reflect.Map:       true,
	reflect.Slice:     true,
	reflect.Func:      true,
	reflect.Chan:      true,
}

// ValidateRegistry performs a strict parity check between manifests and Go
// code: params declarations against params struct tags, needs declarations
// against dependency slot tags, and declared service types against the
// definitions that provide them. Screen or service types whose handlers are
// not registered are skipped; not every configuration loads every module.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string

	for screenType, def := range r.ScreenDefinitionRegistry {
		var handlerName string
		if def.Lifecycle != nil {
			handlerName = def.Lifecycle.OnReady
		}
		handler, ok := r.ScreenHandlerRegistry[handlerName]
		if !ok {
			continue
		}

		errs = append(errs, r.checkParamsParity(ctx, "screen", screenType, def.Params, handler.NewParams)...)
		errs = append(errs, r.checkScreenNeeds(screenType, def, handler)...)
	}

	for serviceType, def := range r.ServiceDefinitionRegistry {
		var handlerName string
		if def.Lifecycle != nil {
			handlerName = def.Lifecycle.Provide
		}
		handler, ok := r.ServiceHandlerRegistry[handlerName]
		if !ok {
			continue
		}

		errs = append(errs, r.checkParamsParity(ctx, "service", serviceType, def.Params, handler.NewParams)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// checkParamsParity checks both the presence of params and the compatibility
// of their types between a manifest and the registered Go params struct.
func (r *Registry) checkParamsParity(ctx context.Context, ownerKind, ownerType string, defs map[string]*config.ParamDefinition, newParams func() any) []string {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	if newParams == nil {
		if len(defs) > 0 {
			errs = append(errs, fmt.Sprintf("%s '%s': manifest declares params, but Go handler has no params struct", ownerKind, ownerType))
		}
		return errs
	}

	paramsType := reflect.TypeOf(newParams())
	for paramsType.Kind() == reflect.Ptr {
		paramsType = paramsType.Elem()
	}
	if paramsType.Kind() != reflect.Struct {
		return append(errs, fmt.Sprintf("%s '%s': params factory must yield a struct, got %s", ownerKind, ownerType, paramsType.Kind()))
	}

	goParams := make(map[string]reflect.StructField)
	for i := 0; i < paramsType.NumField(); i++ {
		field := paramsType.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("hcl"), ",")[0]
		if tagName != "" && tagName != "-" {
			goParams[tagName] = field
		}
	}

	// Check for presence mismatches.
	for name := range goParams {
		if _, ok := defs[name]; !ok {
			errs = append(errs, fmt.Sprintf("%s '%s': Go struct has field for param '%s' which is not declared in manifest", ownerKind, ownerType, name))
		}
	}
	for name := range defs {
		if _, ok := goParams[name]; !ok {
			errs = append(errs, fmt.Sprintf("%s '%s': manifest declares param '%s' which is not found in Go struct", ownerKind, ownerType, name))
		}
	}

	// Check for type mismatches.
	for name, paramDef := range defs {
		goField, ok := goParams[name]
		if !ok {
			continue // Already handled by presence check.
		}

		manifestType := paramDef.Type
		if manifestType.Equals(cty.DynamicPseudoType) {
			logger.Warn("Manifest param uses 'type = any', which disables static type checking. Consider a specific type like 'string', 'number', or 'bool'.",
				ownerKind, ownerType, "param", name)
			continue
		}

		// cty.Value and interface fields accept every value; nothing to
		// check statically.
		if goField.Type == reflect.TypeOf(cty.Value{}) || goField.Type.Kind() == reflect.Interface {
			continue
		}

		goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s '%s', param '%s': could not imply cty type from Go field type %s: %v", ownerKind, ownerType, name, goField.Type, err))
			continue
		}

		if !manifestType.Equals(goFieldType) {
			errs = append(errs, fmt.Sprintf("%s '%s', param '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
				ownerKind, ownerType, name, manifestType.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
		}
	}

	return errs
}

// checkScreenNeeds checks parity between a screen manifest's needs
// declarations and the wire-tagged dependency slots of the constructed
// screen struct, and that every declared slot can actually hold an absent
// value.
func (r *Registry) checkScreenNeeds(screenType string, def *config.ScreenDefinition, handler *RegisteredScreen) []string {
	var errs []string

	if handler.NewScreen == nil {
		if len(def.Needs) > 0 {
			errs = append(errs, fmt.Sprintf("screen '%s': manifest declares needs, but Go handler has no screen constructor", screenType))
		}
		return errs
	}

	screenVal := reflect.ValueOf(handler.NewScreen())
	if screenVal.Kind() != reflect.Ptr || screenVal.IsNil() || screenVal.Elem().Kind() != reflect.Struct {
		return append(errs, fmt.Sprintf("screen '%s': constructor must return a non-nil struct pointer", screenType))
	}
	screenStruct := screenVal.Elem().Type()

	goSlots := make(map[string]reflect.StructField)
	for i := 0; i < screenStruct.NumField(); i++ {
		field := screenStruct.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("wire"), ",")[0]
		if tagName != "" && tagName != "-" {
			goSlots[tagName] = field
		}
	}

	for name, field := range goSlots {
		if _, ok := def.Needs[name]; !ok {
			errs = append(errs, fmt.Sprintf("screen '%s': Go struct has dependency slot '%s' which is not declared in manifest", screenType, name))
		}
		if !nilableKinds[field.Type.Kind()] {
			errs = append(errs, fmt.Sprintf("screen '%s', slot '%s': field type %s can never be absent; dependency slots must be pointers, interfaces, maps, slices, funcs or channels",
				screenType, name, field.Type))
		}
	}

	for name, need := range def.Needs {
		if _, ok := goSlots[name]; !ok {
			errs = append(errs, fmt.Sprintf("screen '%s': manifest declares needs slot '%s' which is not found in Go struct", screenType, name))
		}
		if _, ok := r.ServiceDefinitionRegistry[need.ServiceType]; !ok {
			errs = append(errs, fmt.Sprintf("screen '%s', slot '%s': needs undeclared service type '%s'", screenType, name, need.ServiceType))
		}

		// When the service module registered its Go contract, the slot can
		// be checked statically instead of waiting for injection to fail.
		iface, registered := r.ServiceInterfaceRegistry[need.ServiceType]
		field, found := goSlots[name]
		if registered && found && !serviceTypeFillsSlot(iface, field.Type) {
			errs = append(errs, fmt.Sprintf("screen '%s', slot '%s': service type '%s' provides %s which cannot fill field of type %s",
				screenType, name, need.ServiceType, iface, field.Type))
		}
	}

	return errs
}

// serviceTypeFillsSlot reports whether a value of the service's registered
// Go type can be assigned into a dependency slot field. The same rules the
// injector applies at runtime, evaluated against the contract type.
func serviceTypeFillsSlot(provided, slot reflect.Type) bool {
	if slot.Kind() == reflect.Interface {
		return provided.Implements(slot)
	}
	return provided.AssignableTo(slot)
}
