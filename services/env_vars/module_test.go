package env_vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideEnvVars_SnapshotsEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("SCREENWIRE_TEST_FLAVOR", "mint")

	// Act
	vars, err := ProvideEnvVars(context.Background(), &Params{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "mint", vars.Get("SCREENWIRE_TEST_FLAVOR"))
}

func TestProvideEnvVars_PrefixFilter(t *testing.T) {
	// Arrange
	t.Setenv("SCREENWIRE_TEST_KEEP", "yes")
	t.Setenv("OTHER_TEST_DROP", "no")

	// Act
	vars, err := ProvideEnvVars(context.Background(), &Params{Prefix: "SCREENWIRE_TEST_"})

	// Assert
	require.NoError(t, err)
	_, kept := vars.Lookup("SCREENWIRE_TEST_KEEP")
	_, dropped := vars.Lookup("OTHER_TEST_DROP")
	assert.True(t, kept)
	assert.False(t, dropped)
}

func TestVars_LookupMissing(t *testing.T) {
	t.Parallel()

	// Arrange
	vars := &Vars{All: map[string]string{}}

	// Act
	value, ok := vars.Lookup("SCREENWIRE_TEST_ABSENT")

	// Assert
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.Empty(t, vars.Get("SCREENWIRE_TEST_ABSENT"))
}

func TestReleaseEnvVars_IsANoOp(t *testing.T) {
	t.Parallel()

	// Act / Assert
	assert.NoError(t, ReleaseEnvVars(&Vars{}))
}
