package wire

import "reflect"

// Slot pairs the name of a required late-bound value with whatever the
// injection call supplied for it.
type Slot struct {
	Name  string
	Value any
}

// Filled constructs a Slot holding an injected value.
func Filled(name string, value any) Slot {
	return Slot{Name: name, Value: value}
}

// absent reports whether v holds no injected value. A nil interface is
// absent, as is a nil value of any nilable kind. Values of non-nilable
// kinds are always considered present.
func absent(v any) bool {
	if v == nil {
		return true
	}
	return absentValue(reflect.ValueOf(v))
}

// absentValue is the reflect.Value form of absent, shared with the
// struct-field scan.
func absentValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
