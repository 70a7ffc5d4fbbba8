// Package http_client provides a stateful, shareable HTTP client service
// that screens can declare as a dependency.
package http_client

import (
	"net/http"
	"reflect"

	"github.com/screenwire/screenwire/internal/registry"
)

// Module implements the registry.Module interface. It's the main entrypoint
// for the http_client module, responsible for registering all of its
// components with the application's registry.
type Module struct{}

// Register registers the service lifecycle handlers and the injectable
// interface with the central registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterServiceHandler("ProvideHTTPClient", &registry.RegisteredService{
		NewParams: func() any { return new(Params) },
		ProvideFn: ProvideHTTPClient,
	})
	r.RegisterServiceHandler("ReleaseHTTPClient", &registry.RegisteredService{
		ReleaseFn: ReleaseHTTPClient,
	})
	r.RegisterServiceInterface("http_client", reflect.TypeOf((*http.Client)(nil)))
}
