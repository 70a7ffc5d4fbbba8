package registry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// RegisteredScreen holds the compiled Go parts of a screen type's lifecycle.
// NewScreen yields the struct whose wire-tagged fields are the dependency
// slots; OnReadyFn is invoked as fn(ctx, screen, params) once every required
// slot has been verified present.
type RegisteredScreen struct {
	NewScreen func() any
	NewParams func() any
	OnReadyFn any
}

// RegisterScreenHandler registers the Go side of a screen type's lifecycle
// under the handler name its manifest refers to.
func (r *Registry) RegisterScreenHandler(name string, handler *RegisteredScreen) {
	if _, exists := r.ScreenHandlerRegistry[name]; exists {
		panic(fmt.Sprintf("screen handler with name '%s' already registered", name))
	}
	slog.Debug("Registering screen handler.", "name", name)
	r.ScreenHandlerRegistry[name] = handler
}

// RegisteredService holds Go functions for a service's lifecycle. Provide
// and release handlers are registered as separate entries, each under the
// name its manifest lifecycle block refers to.
type RegisteredService struct {
	NewParams func() any
	ProvideFn any
	ReleaseFn any
}

// RegisterServiceHandler registers Go functions for a service's lifecycle
// events.
func (r *Registry) RegisterServiceHandler(name string, handler *RegisteredService) {
	if _, exists := r.ServiceHandlerRegistry[name]; exists {
		panic(fmt.Sprintf("service handler with name '%s' already registered", name))
	}
	slog.Debug("Registering service handler.", "name", name)
	r.ServiceHandlerRegistry[name] = handler
}

// RegisterServiceInterface registers the Go contract type a service's
// instances satisfy. Registry validation checks declared needs slots
// against it.
func (r *Registry) RegisterServiceInterface(serviceType string, iface reflect.Type) {
	if _, exists := r.ServiceInterfaceRegistry[serviceType]; exists {
		panic(fmt.Sprintf("interface for service type '%s' already registered", serviceType))
	}
	slog.Debug("Registering service interface.", "serviceType", serviceType, "interface", iface.String())
	r.ServiceInterfaceRegistry[serviceType] = iface
}
