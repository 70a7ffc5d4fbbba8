package hclcfg

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeBody iterates through the fields of a Go params struct, finds the
// corresponding HCL arguments, and uses the recursive `decode` helper to
// populate them. Declared defaults are applied for omitted arguments; an
// omitted required argument is an error.
func (c *Converter) DecodeBody(
	ctx context.Context,
	paramsStruct any,
	args map[string]hcl.Expression,
	defs map[string]*config.ParamDefinition,
	evalCtx *hcl.EvalContext,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting HCL body decoding.")

	structVal := reflect.ValueOf(paramsStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("paramsStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		fieldDef := structType.Field(i)
		fieldVal := structVal.Field(i)

		if !fieldDef.IsExported() || !fieldVal.CanSet() {
			continue
		}

		tagName := fieldDef.Tag.Get("hcl")
		tagName = strings.Split(tagName, ",")[0]
		if tagName == "" || tagName == "-" {
			continue
		}

		paramDef, ok := defs[tagName]
		if !ok {
			continue // No definition for this field, skip.
		}

		var valueToDecode cty.Value
		argExpr, provided := args[tagName]

		if provided {
			val, diags := argExpr.Value(evalCtx)
			if diags.HasErrors() {
				return diags
			}
			valueToDecode = val
		} else {
			if paramDef.Default != nil {
				valueToDecode = *paramDef.Default
			} else if paramDef.Optional {
				continue
			} else {
				return fmt.Errorf("missing required argument %q", tagName)
			}
		}

		if err := c.decode(ctx, valueToDecode, paramDef.Type, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode argument '%s': %w", tagName, err)
		}
	}
	logger.Debug("Finished HCL body decoding successfully.")
	return nil
}

// decode is a recursive function that populates a Go value from a cty.Value,
// guided by a manifest-derived cty.Type.
func (c *Converter) decode(ctx context.Context, val cty.Value, declaredType cty.Type, goVal any) error {
	valPtr := reflect.ValueOf(goVal)
	goPtr := valPtr.Elem()
	goType := goPtr.Type()
	logger := ctxlog.FromContext(ctx).With("go_kind", goType.Kind().String())

	// A target field of type cty.Value needs no further decoding; the value
	// is assigned directly.
	if goType == reflect.TypeOf(cty.Value{}) {
		if val.IsKnown() {
			goPtr.Set(reflect.ValueOf(val))
		}
		return nil
	}

	if !val.IsKnown() || val.IsNull() {
		logger.Debug("Skipping decode for null or unknown value.")
		return nil
	}

	switch goType.Kind() {
	case reflect.Struct:
		if !val.Type().IsObjectType() && val.Type() != cty.DynamicPseudoType {
			return fmt.Errorf("type mismatch: cannot decode cty value of type %s into Go struct %s", val.Type().FriendlyName(), goType.String())
		}
		if !declaredType.IsObjectType() && declaredType != cty.DynamicPseudoType {
			return fmt.Errorf("type mismatch: manifest expected an object for Go struct %s, but got %s", goType.String(), declaredType.FriendlyName())
		}

		isDeclaredObject := declaredType.IsObjectType()
		attrMap := val.AsValueMap()

		for i := 0; i < goType.NumField(); i++ {
			fieldDef := goType.Field(i)
			fieldVal := goPtr.Field(i)

			if !fieldDef.IsExported() || !fieldVal.CanSet() {
				continue
			}

			tagName := fieldDef.Tag.Get("cty")
			tagName = strings.Split(tagName, ",")[0]
			if tagName == "" || tagName == "-" {
				continue
			}

			attrVal, ok := attrMap[tagName]
			if !ok {
				continue
			}

			var attrDeclaredType cty.Type
			if isDeclaredObject {
				attrDeclaredType = declaredType.AttributeTypes()[tagName]
			} else {
				attrDeclaredType = attrVal.Type()
			}

			if err := c.decode(ctx, attrVal, attrDeclaredType, fieldVal.Addr().Interface()); err != nil {
				return fmt.Errorf("in attribute '%s': %w", tagName, err)
			}
		}
		return nil

	case reflect.Interface: // This handles 'any'
		nativeVal, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if nativeVal != nil {
			goPtr.Set(reflect.ValueOf(nativeVal))
		}
		return nil

	case reflect.Map:
		return c.decodeMap(ctx, val, declaredType, goPtr)

	case reflect.Slice:
		if !val.Type().IsListType() && !val.Type().IsTupleType() {
			return fmt.Errorf("type mismatch: cannot decode cty.%s into Go slice %s", val.Type().FriendlyName(), goType.String())
		}
		if (!declaredType.IsListType() && !declaredType.IsTupleType()) && declaredType != cty.DynamicPseudoType {
			return fmt.Errorf("type mismatch: manifest expected a list for Go slice %s, but got %s", goType.String(), declaredType.FriendlyName())
		}

		if val.Type().IsTupleType() {
			// Tuples must become uniform lists before element-wise decoding.
			goElemType := goType.Elem()
			ctyElemType, err := gocty.ImpliedType(reflect.Zero(goElemType).Interface())
			if err != nil {
				return fmt.Errorf("cannot imply cty type for slice element %s: %w", goElemType.String(), err)
			}

			listVal, err := convert.Convert(val, cty.List(ctyElemType))
			if err != nil {
				return fmt.Errorf("cannot convert tuple to a uniform list for slice %s: %w", goType.String(), err)
			}
			val = listVal
		}

		newSlice := reflect.MakeSlice(goType, val.LengthInt(), val.LengthInt())
		var elemDeclaredType cty.Type
		if declaredType.IsListType() || declaredType.IsTupleType() {
			elemDeclaredType = declaredType.ElementType()
		} else {
			elemDeclaredType = val.Type().ElementType()
		}

		it := val.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elemVal := it.Element()
			if err := c.decode(ctx, elemVal, elemDeclaredType, newSlice.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("in slice element %d: %w", i, err)
			}
		}
		goPtr.Set(newSlice)
		return nil

	default: // Base cases for primitives (string, int, bool, float64, etc.)
		convertedVal, err := convert.Convert(val, declaredType)
		if err != nil {
			return fmt.Errorf("cannot convert value of type %s to required manifest type %s: %w", val.Type().FriendlyName(), declaredType.FriendlyName(), err)
		}
		return gocty.FromCtyValue(convertedVal, goVal)
	}
}
