// This file contains the logic for translating the HCL schema structs into
// the format-agnostic configuration model defined in the config package.

package hclcfg

import (
	"context"
	"fmt"

	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateScreenInstance converts the HCL-specific screen schema into the
// agnostic model.
func (l *Loader) translateScreenInstance(ctx context.Context, s *ScreenBlock) *config.ScreenInstance {
	logger := ctxlog.FromContext(ctx).With("screen_type", s.ScreenType, "instance_name", s.Name)
	logger.Debug("Translating HCL screen block to internal config model.")

	return &config.ScreenInstance{
		ScreenType: s.ScreenType,
		Name:       s.Name,
		Params:     l.extractBodyAttributes(s.Params),
		Needs:      l.extractBodyAttributes(s.Needs),
		DependsOn:  s.DependsOn,
	}
}

// translateServiceInstance converts the HCL-specific service schema into the
// agnostic model.
func (l *Loader) translateServiceInstance(s *ServiceBlock) *config.ServiceInstance {
	return &config.ServiceInstance{
		ServiceType: s.ServiceType,
		Name:        s.Name,
		Params:      l.extractBodyAttributes(s.Params),
		DependsOn:   s.DependsOn,
	}
}

// translateScreenTypeDefinition converts the HCL-specific screen_type
// manifest into the agnostic model.
func (l *Loader) translateScreenTypeDefinition(ctx context.Context, s *ScreenTypeBlock) (*config.ScreenDefinition, error) {
	def := &config.ScreenDefinition{
		Type:        s.Type,
		Description: s.Description,
		Params:      make(map[string]*config.ParamDefinition),
		Needs:       make(map[string]*config.NeedsDefinition),
	}
	if s.Lifecycle != nil {
		def.Lifecycle = &config.Lifecycle{OnReady: s.Lifecycle.OnReady}
	}

	for _, p := range s.Params {
		if _, exists := def.Params[p.Name]; exists {
			return nil, fmt.Errorf("duplicate param '%s' in screen_type '%s'", p.Name, s.Type)
		}
		translated, err := translateParamDefinition(ctx, p, "screen_type", s.Type)
		if err != nil {
			return nil, err
		}
		def.Params[p.Name] = translated
	}

	for _, need := range s.Needs {
		if _, exists := def.Needs[need.LocalName]; exists {
			return nil, fmt.Errorf("duplicate needs slot '%s' in screen_type '%s'", need.LocalName, s.Type)
		}
		def.Needs[need.LocalName] = &config.NeedsDefinition{
			LocalName:   need.LocalName,
			ServiceType: need.ServiceType,
		}
	}
	return def, nil
}

// translateServiceTypeDefinition converts the HCL-specific service_type
// manifest into the agnostic model.
func (l *Loader) translateServiceTypeDefinition(ctx context.Context, s *ServiceTypeBlock) (*config.ServiceDefinition, error) {
	def := &config.ServiceDefinition{
		Type:        s.Type,
		Description: s.Description,
		Params:      make(map[string]*config.ParamDefinition),
	}
	if s.Lifecycle != nil {
		def.Lifecycle = &config.ServiceLifecycle{
			Provide: s.Lifecycle.Provide,
			Release: s.Lifecycle.Release,
		}
	}

	for _, p := range s.Params {
		if _, exists := def.Params[p.Name]; exists {
			return nil, fmt.Errorf("duplicate param '%s' in service_type '%s'", p.Name, s.Type)
		}
		translated, err := translateParamDefinition(ctx, p, "service_type", s.Type)
		if err != nil {
			return nil, err
		}
		def.Params[p.Name] = translated
	}
	return def, nil
}

// translateParamDefinition processes a single HCL param block, handling its
// declared type, default value and optionality. A param with a non-null
// default is implicitly optional.
func translateParamDefinition(ctx context.Context, p *ParamBlock, ownerKind, ownerName string) (*config.ParamDefinition, error) {
	parsedType, err := TypeExprToCtyType(ctx, p.Type)
	if err != nil {
		return nil, fmt.Errorf("in %s '%s', param '%s': %w", ownerKind, ownerName, p.Name, err)
	}

	isOptional := p.Optional
	var defaultVal *cty.Value

	if isExprDefined(ctx, p.Default, "default") {
		// A nil eval context is used because defaults must be literal values.
		val, diags := p.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for param '%s' in %s '%s': %w", p.Name, ownerKind, ownerName, diags)
		}
		if !val.IsNull() {
			if parsedType != cty.DynamicPseudoType {
				converted, convErr := convert.Convert(val, parsedType)
				if convErr != nil {
					return nil, fmt.Errorf("default value for param '%s' in %s '%s' is not compatible with its type %s: %w",
						p.Name, ownerKind, ownerName, parsedType.FriendlyName(), convErr)
				}
				val = converted
			}
			defaultVal = &val
			isOptional = true
		}
	}

	return &config.ParamDefinition{
		Name:        p.Name,
		Type:        parsedType,
		Description: p.Description,
		Default:     defaultVal,
		Optional:    isOptional,
	}, nil
}
