package wire

import (
	"fmt"
	"reflect"
	"strings"
)

// tagName is the struct tag that marks a field as a late-bound dependency.
const tagName = "wire"

// slotTag is the parsed form of a `wire` struct tag.
type slotTag struct {
	name     string
	optional bool
}

// parseTag splits a raw `wire` tag into its name and options. The second
// return value is false for untagged fields and for tags of "-".
func parseTag(raw string) (slotTag, bool) {
	parts := strings.Split(raw, ",")
	name := parts[0]
	if name == "" || name == "-" {
		return slotTag{}, false
	}
	tag := slotTag{name: name}
	for _, opt := range parts[1:] {
		if opt == "optional" {
			tag.optional = true
		}
	}
	return tag, true
}

// CheckStruct verifies that every required `wire`-tagged field of a screen
// struct holds an injected value. Fields are visited in declaration order
// and the first absent required field is reported as a *MissingError
// attributed to the struct's type name. Fields tagged `wire:"name,optional"`
// may stay absent; untagged and unexported fields are ignored.
//
// The screen must be a non-nil pointer to a struct. Dependency fields must
// be of a nilable kind (pointer, interface, map, slice, func or chan) for
// absence to be observable; tagged fields of other kinds always pass.
func CheckStruct(screen any) error {
	rv := reflect.ValueOf(screen)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("screen must be a non-nil struct pointer, got %T", screen)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("screen must point to a struct, got %T", screen)
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := parseTag(field.Tag.Get(tagName))
		if !ok || tag.optional {
			continue
		}
		if absentValue(rv.Field(i)) {
			return &MissingError{Screen: rt.Name(), Slot: tag.name, Index: i}
		}
	}
	return nil
}

// MustStruct is the assertion form of CheckStruct, for use inside a screen's
// own ready hook. It panics on the first missing required dependency.
func MustStruct(screen any) {
	if err := CheckStruct(screen); err != nil {
		panic(err)
	}
}
