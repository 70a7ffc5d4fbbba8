package wire

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileScreen exercises interface-typed slots alongside concrete ones.
type profileScreen struct {
	Source io.Reader         `wire:"source"`
	Labels map[string]string `wire:"labels"`
	Badge  *string           `wire:"badge,optional"`
}

func newProfileScreen() any { return new(profileScreen) }

func TestBuilderBuild(t *testing.T) {
	t.Run("yields a fully wired instance", func(t *testing.T) {
		got, err := NewBuilder("profile", newProfileScreen).
			Set("source", strings.NewReader("avatar")).
			Set("labels", map[string]string{"theme": "dark"}).
			Build()
		require.NoError(t, err)

		screen, ok := got.(*profileScreen)
		require.True(t, ok)
		assert.NotNil(t, screen.Source)
		assert.Equal(t, "dark", screen.Labels["theme"])
		assert.Nil(t, screen.Badge, "optional slot stays absent unless set")
	})

	t.Run("never yields a partially wired instance", func(t *testing.T) {
		got, err := NewBuilder("profile", newProfileScreen).
			Set("source", strings.NewReader("avatar")).
			Build()

		require.Nil(t, got)
		var missing *MissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "labels", missing.Slot)
	})

	t.Run("unknown slot name is rejected", func(t *testing.T) {
		_, err := NewBuilder("profile", newProfileScreen).
			Set("sources", strings.NewReader("typo")).
			Build()
		require.ErrorContains(t, err, "no dependency slot named 'sources'")
	})

	t.Run("type mismatch is rejected", func(t *testing.T) {
		_, err := NewBuilder("profile", newProfileScreen).
			Set("source", 42).
			Build()
		require.ErrorContains(t, err, "does not implement required interface")
	})

	t.Run("setting a slot twice keeps the later value", func(t *testing.T) {
		second := strings.NewReader("second")
		got, err := NewBuilder("profile", newProfileScreen).
			Set("source", strings.NewReader("first")).
			Set("source", second).
			Set("labels", map[string]string{}).
			Build()
		require.NoError(t, err)
		assert.Same(t, second, got.(*profileScreen).Source)
	})

	t.Run("nil value for a slot is rejected at injection", func(t *testing.T) {
		_, err := NewBuilder("profile", newProfileScreen).
			Set("source", (*strings.Reader)(nil)).
			Set("labels", map[string]string{}).
			Build()
		require.ErrorContains(t, err, "nil value supplied for slot 'source'")
	})

	t.Run("construct returning a non-struct is rejected", func(t *testing.T) {
		_, err := NewBuilder("broken", func() any { return 3 }).Build()
		require.ErrorContains(t, err, "building screen 'broken'")
	})
}
