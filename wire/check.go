package wire

import "fmt"

// MissingError reports the first required value that was never injected into
// a screen. Exactly one is produced per check; slots after the missing one
// are not examined.
type MissingError struct {
	// Screen is the type name of the screen the value belongs to.
	Screen string
	// Slot is the name of the missing value.
	Slot string
	// Index is the position of the missing slot in the checked sequence
	// (the struct field index for CheckStruct).
	Index int
}

// Error implements the error interface for MissingError.
func (e *MissingError) Error() string {
	return fmt.Sprintf("screen '%s': required dependency '%s' was never injected", e.Screen, e.Slot)
}

// Check verifies that every slot holds an injected value. It scans the slots
// in order and returns a *MissingError for the first absent one, leaving the
// rest unexamined. An empty slot list passes trivially. Check never mutates
// the slots, so repeating it over the same values gives the same answer.
func Check(screen string, slots ...Slot) error {
	for i, s := range slots {
		if absent(s.Value) {
			return &MissingError{Screen: screen, Slot: s.Name, Index: i}
		}
	}
	return nil
}

// MustWire is the assertion form of Check, meant to be called from a
// screen's ready hook once the creating code has had its chance to inject.
// A missing value at that point is a programmer error, so MustWire panics
// with a message naming the owning screen type and the offending slot.
func MustWire(screen string, slots ...Slot) {
	if err := Check(screen, slots...); err != nil {
		panic(err)
	}
}
