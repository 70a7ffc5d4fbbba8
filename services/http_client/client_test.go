package http_client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideHTTPClient_AppliesTimeout(t *testing.T) {
	t.Parallel()

	// Act
	client, err := ProvideHTTPClient(context.Background(), &Params{Timeout: "45s"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, client.Timeout)
}

func TestProvideHTTPClient_InvalidTimeout(t *testing.T) {
	t.Parallel()

	// Act
	client, err := ProvideHTTPClient(context.Background(), &Params{Timeout: "not-a-duration"})

	// Assert
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestReleaseHTTPClient(t *testing.T) {
	t.Parallel()

	// Arrange
	client, err := ProvideHTTPClient(context.Background(), &Params{Timeout: "1s"})
	require.NoError(t, err)

	// Act / Assert
	assert.NoError(t, ReleaseHTTPClient(client))
}
