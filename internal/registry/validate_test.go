package registry

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/screenwire/screenwire/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type checkoutScreen struct {
	Client *http.Client `wire:"client"`
	Badge  *string      `wire:"badge,optional"`
}

type checkoutParams struct {
	Currency string `hcl:"currency"`
	MaxItems int    `hcl:"max_items"`
}

type clientParams struct {
	Timeout string `hcl:"timeout"`
}

// validRegistry assembles a registry whose manifests and Go handlers are in
// perfect parity. Tests mutate it to produce specific violations.
func validRegistry() *Registry {
	r := New()

	r.RegisterScreenHandler("OnReadyCheckout", &RegisteredScreen{
		NewScreen: func() any { return new(checkoutScreen) },
		NewParams: func() any { return new(checkoutParams) },
		OnReadyFn: func(context.Context, any, any) error { return nil },
	})
	r.RegisterServiceHandler("ProvideHTTPClient", &RegisteredService{
		NewParams: func() any { return new(clientParams) },
		ProvideFn: func(context.Context, any) (any, error) { return &http.Client{}, nil },
	})

	r.ScreenDefinitionRegistry["checkout"] = &config.ScreenDefinition{
		Type:      "checkout",
		Lifecycle: &config.Lifecycle{OnReady: "OnReadyCheckout"},
		Params: map[string]*config.ParamDefinition{
			"currency":  {Name: "currency", Type: cty.String},
			"max_items": {Name: "max_items", Type: cty.Number},
		},
		Needs: map[string]*config.NeedsDefinition{
			"client": {LocalName: "client", ServiceType: "http_client"},
			"badge":  {LocalName: "badge", ServiceType: "badge_store"},
		},
	}
	r.ServiceDefinitionRegistry["http_client"] = &config.ServiceDefinition{
		Type:      "http_client",
		Lifecycle: &config.ServiceLifecycle{Provide: "ProvideHTTPClient", Release: "ReleaseHTTPClient"},
		Params: map[string]*config.ParamDefinition{
			"timeout": {Name: "timeout", Type: cty.String},
		},
	}
	r.ServiceDefinitionRegistry["badge_store"] = &config.ServiceDefinition{
		Type: "badge_store",
	}
	return r
}

func TestValidateRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("valid parity passes", func(t *testing.T) {
		require.NoError(t, validRegistry().ValidateRegistry(ctx))
	})

	t.Run("unregistered handler is skipped", func(t *testing.T) {
		r := validRegistry()
		r.ScreenDefinitionRegistry["orphan"] = &config.ScreenDefinition{
			Type:      "orphan",
			Lifecycle: &config.Lifecycle{OnReady: "OnReadyOrphan"},
			Params: map[string]*config.ParamDefinition{
				"whatever": {Name: "whatever", Type: cty.String},
			},
		}

		require.NoError(t, r.ValidateRegistry(ctx))
	})

	t.Run("manifest param missing from Go struct", func(t *testing.T) {
		r := validRegistry()
		r.ScreenDefinitionRegistry["checkout"].Params["discount"] = &config.ParamDefinition{
			Name: "discount", Type: cty.Number,
		}

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "manifest declares param 'discount' which is not found in Go struct")
	})

	t.Run("Go param field missing from manifest", func(t *testing.T) {
		r := validRegistry()
		delete(r.ScreenDefinitionRegistry["checkout"].Params, "max_items")

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Go struct has field for param 'max_items' which is not declared in manifest")
	})

	t.Run("param type mismatch", func(t *testing.T) {
		r := validRegistry()
		r.ScreenDefinitionRegistry["checkout"].Params["max_items"].Type = cty.String

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "param 'max_items': type mismatch")
	})

	t.Run("param of type any skips the type check", func(t *testing.T) {
		r := validRegistry()
		r.ScreenDefinitionRegistry["checkout"].Params["max_items"].Type = cty.DynamicPseudoType

		require.NoError(t, r.ValidateRegistry(ctx))
	})

	t.Run("manifest needs slot missing from Go struct", func(t *testing.T) {
		r := validRegistry()
		r.ScreenDefinitionRegistry["checkout"].Needs["session"] = &config.NeedsDefinition{
			LocalName: "session", ServiceType: "http_client",
		}

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "manifest declares needs slot 'session' which is not found in Go struct")
	})

	t.Run("Go dependency slot missing from manifest", func(t *testing.T) {
		r := validRegistry()
		delete(r.ScreenDefinitionRegistry["checkout"].Needs, "badge")

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Go struct has dependency slot 'badge' which is not declared in manifest")
	})

	t.Run("needs referencing an undeclared service type", func(t *testing.T) {
		r := validRegistry()
		delete(r.ServiceDefinitionRegistry, "badge_store")

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs undeclared service type 'badge_store'")
	})

	t.Run("non-nilable dependency slot", func(t *testing.T) {
		type countedScreen struct {
			Count int `wire:"count"`
		}

		r := validRegistry()
		r.RegisterScreenHandler("OnReadyCounted", &RegisteredScreen{
			NewScreen: func() any { return new(countedScreen) },
			OnReadyFn: func(context.Context, any, any) error { return nil },
		})
		r.ScreenDefinitionRegistry["counted"] = &config.ScreenDefinition{
			Type:      "counted",
			Lifecycle: &config.Lifecycle{OnReady: "OnReadyCounted"},
			Needs: map[string]*config.NeedsDefinition{
				"count": {LocalName: "count", ServiceType: "http_client"},
			},
		}

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "slot 'count': field type int can never be absent")
	})

	t.Run("registered service contract fills the slot", func(t *testing.T) {
		r := validRegistry()
		r.RegisterServiceInterface("http_client", reflect.TypeOf((*http.Client)(nil)))

		require.NoError(t, r.ValidateRegistry(ctx))
	})

	t.Run("registered service contract cannot fill the slot", func(t *testing.T) {
		r := validRegistry()
		r.RegisterServiceInterface("badge_store", reflect.TypeOf((*http.Client)(nil)))

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "slot 'badge': service type 'badge_store' provides *http.Client which cannot fill field of type *string")
	})

	t.Run("service params parity", func(t *testing.T) {
		r := validRegistry()
		r.ServiceDefinitionRegistry["http_client"].Params["proxy"] = &config.ParamDefinition{
			Name: "proxy", Type: cty.String,
		}

		err := r.ValidateRegistry(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "service 'http_client': manifest declares param 'proxy' which is not found in Go struct")
	})
}
