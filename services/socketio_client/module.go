// Package socketio_client provides a persistent socket.io connection as an
// injectable service.
package socketio_client

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"time"

	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params defines the arguments for providing a socketio_client service.
type Params struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// ProvideSocketIOClient is the 'provide' handler for the service. It blocks
// until the connection is established or the attempt fails.
func ProvideSocketIOClient(ctx context.Context, params *Params) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("service", "socketio_client", "url", params.URL)
	logger.Info("Creating new client instance...")

	parsedURL, err := url.Parse(params.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if params.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(params.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errs[0].(error)
		logger.Debug("Connection attempt failed.", "error", err)
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		// Connection succeeded, return the persistent client.
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(15 * time.Second): // Generous timeout for connection
		io.Disconnect()
		return nil, fmt.Errorf("timed out after 15s waiting for socket.io connection")
	}
}

// ReleaseSocketIOClient is the 'release' handler.
func ReleaseSocketIOClient(client *socket.Socket) error {
	slog.Info("Releasing socket.io client instance", "sid", client.Id())
	client.Disconnect()
	return nil
}

// Register registers the service handlers and interface with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterServiceHandler("ProvideSocketIOClient", &registry.RegisteredService{
		NewParams: func() any { return new(Params) },
		ProvideFn: ProvideSocketIOClient,
	})
	r.RegisterServiceHandler("ReleaseSocketIOClient", &registry.RegisteredService{
		ReleaseFn: ReleaseSocketIOClient,
	})
	r.RegisterServiceInterface("socketio_client", reflect.TypeOf((*socket.Socket)(nil)))
}
