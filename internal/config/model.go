package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration, including all manifests and the wiring plan.
type Model struct {
	Screens  map[string]*ScreenDefinition
	Services map[string]*ServiceDefinition
	Wiring   *Wiring
}

// Wiring represents the user's instance plan: which screens to bring up,
// which services to provide, and how they connect.
type Wiring struct {
	Screens  []*ScreenInstance
	Services []*ServiceInstance
}

// ScreenInstance is the format-agnostic representation of a `screen` block.
type ScreenInstance struct {
	ScreenType string
	Name       string
	Params     map[string]hcl.Expression
	Needs      map[string]hcl.Expression
	DependsOn  []string
}

// ServiceInstance is the format-agnostic representation of a `service` block.
type ServiceInstance struct {
	ServiceType string
	Name        string
	Params      map[string]hcl.Expression
	DependsOn   []string
}

// --- Manifest Models ---

// ScreenDefinition is the format-agnostic representation of a screen type's
// manifest: its lifecycle hook, its parameters, and the services it needs.
type ScreenDefinition struct {
	Type        string
	Description string
	Lifecycle   *Lifecycle
	Params      map[string]*ParamDefinition
	Needs       map[string]*NeedsDefinition
}

// ServiceDefinition is the format-agnostic representation of a service
// type's manifest.
type ServiceDefinition struct {
	Type        string
	Description string
	Lifecycle   *ServiceLifecycle
	Params      map[string]*ParamDefinition
}

// Lifecycle maps a screen's events to Go handler names.
type Lifecycle struct {
	OnReady string
}

// ServiceLifecycle maps a service's events to Go handler names.
type ServiceLifecycle struct {
	Provide string
	Release string
}

// ParamDefinition defines a single parameter for a screen or service.
// A nil Default together with Optional being false marks the parameter
// as required: instances that omit it fail at decode time.
type ParamDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// NeedsDefinition declares a service dependency slot of a screen type. The
// local name must match a `wire` tag on the screen's Go struct.
type NeedsDefinition struct {
	LocalName   string
	ServiceType string
}
