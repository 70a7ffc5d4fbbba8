package wire

import (
	"fmt"
	"reflect"
)

// slotFields maps `wire` tag names to their struct field indices, in
// declaration order. It returns an error for anything that is not a non-nil
// struct pointer, since both Builder and Factory construct through an
// application-supplied function whose result cannot be trusted blindly.
func slotFields(screen any) (reflect.Value, map[string]int, error) {
	rv := reflect.ValueOf(screen)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("constructed screen must be a non-nil struct pointer, got %T", screen)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("constructed screen must point to a struct, got %T", screen)
	}

	fields := make(map[string]int)
	rt := elem.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag, ok := parseTag(field.Tag.Get(tagName)); ok {
			fields[tag.name] = i
		}
	}
	return elem, fields, nil
}

// injectSlot assigns value into the named dependency field, enforcing the
// same interface/assignability rules the runtime injector applies.
func injectSlot(screenType string, elem reflect.Value, fields map[string]int, slot Slot) error {
	idx, ok := fields[slot.Name]
	if !ok {
		return fmt.Errorf("screen '%s' has no dependency slot named '%s'", screenType, slot.Name)
	}

	fieldVal := elem.Field(idx)
	fieldType := fieldVal.Type()

	if absent(slot.Value) {
		// Injecting an absent value would only defer the failure to the
		// presence check; reject it here where the caller is identifiable.
		return fmt.Errorf("screen '%s': nil value supplied for slot '%s'", screenType, slot.Name)
	}

	valueType := reflect.TypeOf(slot.Value)
	if fieldType.Kind() == reflect.Interface {
		if !valueType.Implements(fieldType) {
			return fmt.Errorf("screen '%s': type mismatch for '%s': value of type %v does not implement required interface %v", screenType, slot.Name, valueType, fieldType)
		}
	} else if !valueType.AssignableTo(fieldType) {
		return fmt.Errorf("screen '%s': type mismatch for '%s': value of type %v is not assignable to field of type %v", screenType, slot.Name, valueType, fieldType)
	}

	fieldVal.Set(reflect.ValueOf(slot.Value))
	return nil
}
