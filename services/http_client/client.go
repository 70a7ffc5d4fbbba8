package http_client

import (
	"context"
	"net/http"
	"time"
)

// Params defines the arguments for providing an http_client service.
type Params struct {
	Timeout string `hcl:"timeout,optional"`
}

// ProvideHTTPClient is the 'provide' handler for the service. It returns a
// live *http.Client that is shared by every screen wired to the instance.
func ProvideHTTPClient(ctx context.Context, params *Params) (*http.Client, error) {
	timeout, err := time.ParseDuration(params.Timeout)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Timeout: timeout,
		// In a real-world scenario, you would configure the transport here
		// for connection pooling, etc.
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return client, nil
}

// ReleaseHTTPClient is the 'release' handler. For an http.Client, we just
// need to gracefully close any idle connections.
func ReleaseHTTPClient(client *http.Client) error {
	client.CloseIdleConnections()
	return nil
}
