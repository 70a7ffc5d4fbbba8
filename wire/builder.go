package wire

import "fmt"

// Builder accumulates the required values for a single screen and yields the
// instance only once construction, injection and the presence check have all
// succeeded. Code that receives a screen from Build never needs a ready-hook
// assertion: a partially wired instance is unobtainable.
type Builder struct {
	screen    string
	construct func() any
	slots     []Slot
}

// NewBuilder returns a Builder for one screen instance. The construct
// function is the zero-argument path the creating framework would normally
// own; it must return a pointer to the screen struct.
func NewBuilder(screen string, construct func() any) *Builder {
	return &Builder{screen: screen, construct: construct}
}

// Set records a value for the named dependency slot. Setting the same slot
// again replaces the earlier value. Set returns the Builder for chaining.
func (b *Builder) Set(name string, value any) *Builder {
	for i, s := range b.slots {
		if s.Name == name {
			b.slots[i].Value = value
			return b
		}
	}
	b.slots = append(b.slots, Slot{Name: name, Value: value})
	return b
}

// Build constructs the screen, injects every recorded slot and verifies that
// no required dependency is left absent. On any failure it returns a nil
// instance and an error naming the screen and the offending slot.
func (b *Builder) Build() (any, error) {
	screen := b.construct()
	elem, fields, err := slotFields(screen)
	if err != nil {
		return nil, fmt.Errorf("building screen '%s': %w", b.screen, err)
	}

	for _, slot := range b.slots {
		if err := injectSlot(b.screen, elem, fields, slot); err != nil {
			return nil, err
		}
	}

	if err := CheckStruct(screen); err != nil {
		return nil, err
	}
	return screen, nil
}
