// This file contains the logic for translating decoded YAML documents into
// the format-agnostic configuration model, bridging plain YAML values into
// the HCL expression types the rest of the system consumes.

package yamlcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/hclcfg"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

func translateScreenTypeDoc(ctx context.Context, typeName string, doc *screenTypeDoc) (*config.ScreenDefinition, error) {
	def := &config.ScreenDefinition{
		Type:        typeName,
		Description: doc.Description,
		Params:      make(map[string]*config.ParamDefinition),
		Needs:       make(map[string]*config.NeedsDefinition),
	}
	if doc.Lifecycle != nil {
		def.Lifecycle = &config.Lifecycle{OnReady: doc.Lifecycle.OnReady}
	}

	for name, p := range doc.Params {
		translated, err := translateParamDoc(ctx, name, p, "screen_type", typeName)
		if err != nil {
			return nil, err
		}
		def.Params[name] = translated
	}

	for localName, need := range doc.Needs {
		def.Needs[localName] = &config.NeedsDefinition{
			LocalName:   localName,
			ServiceType: need.ServiceType,
		}
	}
	return def, nil
}

func translateServiceTypeDoc(ctx context.Context, typeName string, doc *serviceTypeDoc) (*config.ServiceDefinition, error) {
	def := &config.ServiceDefinition{
		Type:        typeName,
		Description: doc.Description,
		Params:      make(map[string]*config.ParamDefinition),
	}
	if doc.Lifecycle != nil {
		def.Lifecycle = &config.ServiceLifecycle{
			Provide: doc.Lifecycle.Provide,
			Release: doc.Lifecycle.Release,
		}
	}

	for name, p := range doc.Params {
		translated, err := translateParamDoc(ctx, name, p, "service_type", typeName)
		if err != nil {
			return nil, err
		}
		def.Params[name] = translated
	}
	return def, nil
}

// translateParamDoc mirrors the HCL param translation: a non-null default
// implies optionality and must conform to the declared type.
func translateParamDoc(ctx context.Context, name string, doc *paramDoc, ownerKind, ownerName string) (*config.ParamDefinition, error) {
	parsedType, err := typeFromString(ctx, doc.Type)
	if err != nil {
		return nil, fmt.Errorf("in %s '%s', param '%s': %w", ownerKind, ownerName, name, err)
	}

	isOptional := doc.Optional
	var defaultVal *cty.Value

	if doc.Default != nil {
		val, err := nativeToCty(doc.Default)
		if err != nil {
			return nil, fmt.Errorf("invalid default value for param '%s' in %s '%s': %w", name, ownerKind, ownerName, err)
		}
		if !val.IsNull() {
			if parsedType != cty.DynamicPseudoType {
				converted, convErr := convert.Convert(val, parsedType)
				if convErr != nil {
					return nil, fmt.Errorf("default value for param '%s' in %s '%s' is not compatible with its type %s: %w",
						name, ownerKind, ownerName, parsedType.FriendlyName(), convErr)
				}
				val = converted
			}
			defaultVal = &val
			isOptional = true
		}
	}

	return &config.ParamDefinition{
		Name:        name,
		Type:        parsedType,
		Description: doc.Description,
		Default:     defaultVal,
		Optional:    isOptional,
	}, nil
}

func translateScreenDoc(doc *screenDoc) (*config.ScreenInstance, error) {
	if doc.ScreenType == "" || doc.Name == "" {
		return nil, fmt.Errorf("screen entry requires both screen_type and name")
	}

	params, err := paramsToExprs(doc.Params)
	if err != nil {
		return nil, fmt.Errorf("in screen '%s.%s': %w", doc.ScreenType, doc.Name, err)
	}

	var needs map[string]hcl.Expression
	if len(doc.Needs) > 0 {
		needs = make(map[string]hcl.Expression, len(doc.Needs))
		for slot, ref := range doc.Needs {
			expr, err := referenceExpr(ref)
			if err != nil {
				return nil, fmt.Errorf("invalid needs reference %q for slot '%s' in screen '%s.%s': %w",
					ref, slot, doc.ScreenType, doc.Name, err)
			}
			needs[slot] = expr
		}
	}

	return &config.ScreenInstance{
		ScreenType: doc.ScreenType,
		Name:       doc.Name,
		Params:     params,
		Needs:      needs,
		DependsOn:  doc.DependsOn,
	}, nil
}

func translateServiceDoc(doc *serviceDoc) (*config.ServiceInstance, error) {
	if doc.ServiceType == "" || doc.Name == "" {
		return nil, fmt.Errorf("service entry requires both service_type and name")
	}

	params, err := paramsToExprs(doc.Params)
	if err != nil {
		return nil, fmt.Errorf("in service '%s.%s': %w", doc.ServiceType, doc.Name, err)
	}

	return &config.ServiceInstance{
		ServiceType: doc.ServiceType,
		Name:        doc.Name,
		Params:      params,
		DependsOn:   doc.DependsOn,
	}, nil
}

// paramsToExprs lifts plain YAML param values into literal HCL expressions.
func paramsToExprs(params map[string]any) (map[string]hcl.Expression, error) {
	if len(params) == 0 {
		return nil, nil
	}
	exprs := make(map[string]hcl.Expression, len(params))
	for name, raw := range params {
		val, err := nativeToCty(raw)
		if err != nil {
			return nil, fmt.Errorf("param '%s': %w", name, err)
		}
		exprs[name] = &hclsyntax.LiteralValueExpr{Val: val}
	}
	return exprs, nil
}

// referenceExpr parses an instance reference string such as
// "service.http_client.shared" into a traversal expression, so implicit
// dependency extraction sees the same shape it would from HCL.
func referenceExpr(raw string) (hcl.Expression, error) {
	traversal, diags := hclsyntax.ParseTraversalAbs([]byte(raw), "needs", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}
	return &hclsyntax.ScopeTraversalExpr{
		Traversal: traversal,
		SrcRange:  traversal.SourceRange(),
	}, nil
}

// typeFromString parses a type declaration string (e.g. "list(string)")
// through the shared HCL type expression parser. An empty string means any.
func typeFromString(ctx context.Context, s string) (cty.Type, error) {
	if s == "" {
		return cty.DynamicPseudoType, nil
	}
	expr, diags := hclsyntax.ParseExpression([]byte(s), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("invalid type expression %q: %s", s, diags.Error())
	}
	return hclcfg.TypeExprToCtyType(ctx, expr)
}

// nativeToCty recursively converts a decoded YAML value into a cty.Value.
// Lists become tuples and mappings become objects; the converter downstream
// already knows how to narrow those into declared types.
func nativeToCty(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(tv), nil
	case bool:
		return cty.BoolVal(tv), nil
	case int:
		return cty.NumberIntVal(int64(tv)), nil
	case int64:
		return cty.NumberIntVal(tv), nil
	case uint64:
		return cty.NumberUIntVal(tv), nil
	case float64:
		return cty.NumberFloatVal(tv), nil
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(tv))
		for i, elem := range tv {
			ev, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in list element %d: %w", i, err)
			}
			vals[i] = ev
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if len(tv) == 0 {
			return cty.EmptyObjectVal, nil
		}
		vals := make(map[string]cty.Value, len(tv))
		for k, elem := range tv {
			ev, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", k, err)
			}
			vals[k] = ev
		}
		return cty.ObjectVal(vals), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}
