package system

import (
	"testing"

	"github.com/screenwire/screenwire/internal/testutil"
)

// assertOverlap fails the test when the two execution records do not overlap
// in time, meaning the screens ran sequentially instead of in parallel.
func assertOverlap(t *testing.T, idA, idB string, a, b *testutil.ExecutionRecord) {
	t.Helper()

	if a == nil || b == nil {
		t.Fatalf("missing execution records for %q and %q", idA, idB)
	}
	if a.Start.After(b.End) || b.Start.After(a.End) {
		t.Errorf("screens %q and %q did not run in parallel. %q: %v-%v, %q: %v-%v",
			idA, idB, idA, a.Start, a.End, idB, b.Start, b.End)
	}
}
