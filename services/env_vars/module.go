// Package env_vars provides a read-only snapshot of the process environment
// as an injectable service.
package env_vars

import (
	"context"
	"os"
	"reflect"
	"strings"

	"github.com/screenwire/screenwire/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params defines the arguments for providing an env_vars service.
type Params struct {
	Prefix string `hcl:"prefix,optional"`
}

// Vars is the injected value. It is a snapshot taken once at provide time,
// so every screen wired to the same instance sees identical values.
type Vars struct {
	All map[string]string
}

// Get returns the value of a variable, or the empty string if it was not
// present in the snapshot.
func (v *Vars) Get(name string) string {
	return v.All[name]
}

// Lookup returns the value of a variable and whether it was present in the
// snapshot.
func (v *Vars) Lookup(name string) (string, bool) {
	value, ok := v.All[name]
	return value, ok
}

// ProvideEnvVars is the 'provide' handler for the service. An optional
// prefix narrows the snapshot to matching variable names.
func ProvideEnvVars(ctx context.Context, params *Params) (*Vars, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 {
			continue
		}
		if params.Prefix != "" && !strings.HasPrefix(pair[0], params.Prefix) {
			continue
		}
		envMap[pair[0]] = pair[1]
	}

	return &Vars{All: envMap}, nil
}

// ReleaseEnvVars is the 'release' handler. A snapshot holds no live
// resources, so there is nothing to tear down.
func ReleaseEnvVars(vars *Vars) error {
	return nil
}

// Register registers the service handlers and interface with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterServiceHandler("ProvideEnvVars", &registry.RegisteredService{
		NewParams: func() any { return new(Params) },
		ProvideFn: ProvideEnvVars,
	})
	r.RegisterServiceHandler("ReleaseEnvVars", &registry.RegisteredService{
		ReleaseFn: ReleaseEnvVars,
	})
	r.RegisterServiceInterface("env_vars", reflect.TypeOf((*Vars)(nil)))
}
