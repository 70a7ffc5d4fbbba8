// This file contains the logic for parsing HCL type expressions (e.g.
// `string`, `list(number)`, `object({...})`) into their corresponding
// cty.Type objects.

package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// TypeExprToCtyType converts an HCL type expression into its cty.Type
// equivalent. A nil expression defaults to the dynamic (any) type. The YAML
// loader reuses it for type strings parsed out of yaml manifests.
func TypeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return cty.DynamicPseudoType, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if v.Name == "object" {
			return objectTypeFromCall(ctx, v)
		}
		return collectionTypeFromCall(ctx, v)

	case *hclsyntax.ScopeTraversalExpr:
		return primitiveTypeFromKeyword(v)

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// objectTypeFromCall parses the object({...}) type constructor.
func objectTypeFromCall(ctx context.Context, call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("the object() type constructor requires exactly one argument (the object definition), got %d", len(call.Args))
	}

	objExpr, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.DynamicPseudoType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", call.Args[0])
	}

	if len(objExpr.Items) == 0 {
		return cty.Object(map[string]cty.Type{}), nil
	}

	attrTypes := make(map[string]cty.Type)
	for _, item := range objExpr.Items {
		key := objectAttrKey(item.KeyExpr)
		if key == "" {
			return cty.DynamicPseudoType, fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings, not complex expressions")
		}

		valueType, err := TypeExprToCtyType(ctx, item.ValueExpr)
		if err != nil {
			return cty.DynamicPseudoType, fmt.Errorf("in object attribute '%s': %w", key, err)
		}
		attrTypes[key] = valueType
	}

	return cty.Object(attrTypes), nil
}

// objectAttrKey extracts the attribute name from an object item key. HCL
// wraps object keys in an ObjectConsKeyExpr; the wrapped expression is
// either a bare identifier or a quoted string template.
func objectAttrKey(keyExpr hclsyntax.Expression) string {
	wrapper, ok := keyExpr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	switch kexpr := wrapper.Wrapped.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(kexpr.Traversal) == 1 {
			return kexpr.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		if len(kexpr.Parts) == 1 {
			if lit, isLit := kexpr.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString()
			}
		}
	}
	return ""
}

// collectionTypeFromCall parses the list(), map() and set() type
// constructors.
func collectionTypeFromCall(ctx context.Context, call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(call.Args))
	}

	elementType, err := TypeExprToCtyType(ctx, call.Args[0])
	if err != nil {
		return cty.DynamicPseudoType, err
	}
	if elementType == cty.DynamicPseudoType {
		return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
	}

	switch call.Name {
	case "list":
		return cty.List(elementType), nil
	case "map":
		return cty.Map(elementType), nil
	case "set":
		return cty.Set(elementType), nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", call.Name)
	}
}

// primitiveTypeFromKeyword parses the bare type keywords string, number,
// bool and any.
func primitiveTypeFromKeyword(expr *hclsyntax.ScopeTraversalExpr) (cty.Type, error) {
	if len(expr.Traversal) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
	}
	switch rootName := expr.Traversal.RootName(); rootName {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", rootName)
	}
}
