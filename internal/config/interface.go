package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for a format-specific data binding and type
// conversion implementation. It acts as the bridge between raw configuration
// values and the Go structs used by screen and service handlers.
type Converter interface {
	// DecodeBody decodes a raw `params` block into a target Go struct,
	// applying manifest defaults and rejecting missing required values.
	DecodeBody(
		ctx context.Context,
		paramsStruct any,
		args map[string]hcl.Expression,
		defs map[string]*ParamDefinition,
		evalCtx *hcl.EvalContext,
	) error
}
