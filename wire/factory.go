package wire

import "fmt"

// Factory restores single-phase construction for a screen type: the
// application binds every provider up front and each Make call yields a
// fresh, fully-wired instance. The two-phase construct-then-inject dance,
// and with it the ready-hook assertion, stays inside the factory.
type Factory struct {
	screen    string
	construct func() any
	providers []Slot
	bound     map[string]bool
}

// NewFactory returns a Factory for the given screen type. The construct
// function must return a pointer to a fresh screen struct on every call.
func NewFactory(screen string, construct func() any) *Factory {
	return &Factory{
		screen:    screen,
		construct: construct,
		bound:     make(map[string]bool),
	}
}

// Provide binds a value to the named dependency slot for every future Make.
// Each slot is bound exactly once; binding it again is a programmer error
// and panics, mirroring duplicate handler registration.
func (f *Factory) Provide(name string, value any) *Factory {
	if f.bound[name] {
		panic(fmt.Sprintf("provider for slot '%s' of screen '%s' already bound", name, f.screen))
	}
	f.bound[name] = true
	f.providers = append(f.providers, Slot{Name: name, Value: value})
	return f
}

// Make constructs a new screen instance, injects every bound provider and
// verifies completeness. Instances from successive calls are independent.
func (f *Factory) Make() (any, error) {
	screen := f.construct()
	elem, fields, err := slotFields(screen)
	if err != nil {
		return nil, fmt.Errorf("making screen '%s': %w", f.screen, err)
	}

	for _, slot := range f.providers {
		if err := injectSlot(f.screen, elem, fields, slot); err != nil {
			return nil, err
		}
	}

	if err := CheckStruct(screen); err != nil {
		return nil, err
	}
	return screen, nil
}
