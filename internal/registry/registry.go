package registry

import (
	"reflect"

	"github.com/screenwire/screenwire/internal/config"
)

// Module is the interface that all core modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers, definitions, and interfaces
// for a single application instance.
type Registry struct {
	ScreenHandlerRegistry     map[string]*RegisteredScreen
	ServiceHandlerRegistry    map[string]*RegisteredService
	ScreenDefinitionRegistry  map[string]*config.ScreenDefinition
	ServiceDefinitionRegistry map[string]*config.ServiceDefinition
	ServiceInterfaceRegistry  map[string]reflect.Type
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		ScreenHandlerRegistry:     make(map[string]*RegisteredScreen),
		ServiceHandlerRegistry:    make(map[string]*RegisteredService),
		ScreenDefinitionRegistry:  make(map[string]*config.ScreenDefinition),
		ServiceDefinitionRegistry: make(map[string]*config.ServiceDefinition),
		ServiceInterfaceRegistry:  make(map[string]reflect.Type),
	}
}

// PopulateDefinitionsFromModel copies the loaded manifest definitions from
// the config model into the registry for easy access during execution.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Screens {
		r.ScreenDefinitionRegistry[key] = val
	}
	for key, val := range model.Services {
		r.ServiceDefinitionRegistry[key] = val
	}
}
