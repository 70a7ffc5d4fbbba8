package hclcfg

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Wiring Structures ---

// ParamsBlock represents the content of the 'params' block within a screen
// or service instance.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// NeedsBlock represents the content of the 'needs' block within a screen
// instance. Each attribute maps a declared local name to a service instance
// reference such as `service.http_client.shared`.
type NeedsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ScreenBlock represents a `screen` block from a user's wiring file. It is a
// wired instance of a defined screen type.
type ScreenBlock struct {
	ScreenType string       `hcl:"screen_type,label"`
	Name       string       `hcl:"instance_name,label"`
	Params     *ParamsBlock `hcl:"params,block"`
	Needs      *NeedsBlock  `hcl:"needs,block"`
	DependsOn  []string     `hcl:"depends_on,optional"`
}

// ServiceBlock represents a `service` block from a user's wiring file. It is
// a managed, shared instance of a defined service type.
type ServiceBlock struct {
	ServiceType string       `hcl:"service_type,label"`
	Name        string       `hcl:"instance_name,label"`
	Params      *ParamsBlock `hcl:"params,block"`
	DependsOn   []string     `hcl:"depends_on,optional"`
}

// --- Manifest Schemas ---

// LifecycleBlock maps a screen type's ready event to a registered Go handler
// function.
type LifecycleBlock struct {
	OnReady string `hcl:"on_ready,optional"`
}

// ServiceLifecycleBlock maps a service type's lifecycle events (provide,
// release) to registered Go handler functions.
type ServiceLifecycleBlock struct {
	Provide string `hcl:"provide"`
	Release string `hcl:"release"`
}

// ParamBlock defines a single configuration parameter for a screen or
// service type.
type ParamBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}

// NeedsDefBlock declares a service dependency slot required by a screen
// type: the local slot name and the service type that can fill it.
type NeedsDefBlock struct {
	LocalName   string `hcl:"local_name,label"`
	ServiceType string `hcl:"service_type"`
}

// ScreenTypeBlock represents the HCL manifest for a wireable `screen_type`.
type ScreenTypeBlock struct {
	Type        string           `hcl:"type,label"`
	Description string           `hcl:"description,optional"`
	Lifecycle   *LifecycleBlock  `hcl:"lifecycle,block"`
	Params      []*ParamBlock    `hcl:"param,block"`
	Needs       []*NeedsDefBlock `hcl:"needs,block"`
}

// ServiceTypeBlock represents the HCL manifest for a provided `service_type`.
type ServiceTypeBlock struct {
	Type        string                 `hcl:"type,label"`
	Description string                 `hcl:"description,optional"`
	Lifecycle   *ServiceLifecycleBlock `hcl:"lifecycle,block"`
	Params      []*ParamBlock          `hcl:"param,block"`
}
