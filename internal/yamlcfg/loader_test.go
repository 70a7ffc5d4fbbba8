package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/screenwire/screenwire/internal/hclexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeYAMLFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	manifest := `
screen_types:
  checkout:
    description: Order review and payment.
    lifecycle:
      on_ready: OnReadyCheckout
    params:
      currency:
        type: string
        default: USD
      max_items:
        type: number
    needs:
      client:
        service_type: http_client

service_types:
  http_client:
    lifecycle:
      provide: ProvideHTTPClient
      release: ReleaseHTTPClient
    params:
      timeout:
        type: string
        optional: true
`
	wiring := `
services:
  - service_type: http_client
    name: shared
    params:
      timeout: 30s

screens:
  - screen_type: checkout
    name: main
    params:
      max_items: 10
    needs:
      client: service.http_client.shared
    depends_on: ["http_client.shared"]
`
	dir := t.TempDir()
	writeYAMLFile(t, dir, "manifest.yaml", manifest)
	writeYAMLFile(t, dir, "wiring.yml", wiring)

	model, converter, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	require.NotNil(t, converter)

	checkout := model.Screens["checkout"]
	require.NotNil(t, checkout)
	assert.Equal(t, "Order review and payment.", checkout.Description)
	require.NotNil(t, checkout.Lifecycle)
	assert.Equal(t, "OnReadyCheckout", checkout.Lifecycle.OnReady)

	currency := checkout.Params["currency"]
	require.NotNil(t, currency)
	assert.Equal(t, cty.String, currency.Type)
	assert.True(t, currency.Optional)
	require.NotNil(t, currency.Default)
	assert.Equal(t, "USD", currency.Default.AsString())

	require.Contains(t, checkout.Needs, "client")
	assert.Equal(t, "http_client", checkout.Needs["client"].ServiceType)

	httpClient := model.Services["http_client"]
	require.NotNil(t, httpClient)
	require.NotNil(t, httpClient.Lifecycle)
	assert.Equal(t, "ProvideHTTPClient", httpClient.Lifecycle.Provide)
	assert.Equal(t, "ReleaseHTTPClient", httpClient.Lifecycle.Release)

	require.Len(t, model.Wiring.Services, 1)
	svc := model.Wiring.Services[0]
	assert.Equal(t, "http_client", svc.ServiceType)
	assert.Equal(t, "shared", svc.Name)

	timeoutVal, diags := svc.Params["timeout"].Value(nil)
	require.False(t, diags.HasErrors())
	assert.Equal(t, cty.StringVal("30s"), timeoutVal)

	require.Len(t, model.Wiring.Screens, 1)
	scr := model.Wiring.Screens[0]
	assert.Equal(t, "checkout", scr.ScreenType)
	assert.Equal(t, "main", scr.Name)
	assert.Equal(t, []string{"http_client.shared"}, scr.DependsOn)

	maxItemsVal, diags := scr.Params["max_items"].Value(nil)
	require.False(t, diags.HasErrors())
	assert.True(t, cty.NumberIntVal(10).RawEquals(maxItemsVal))

	// The needs reference must surface as a traversal, exactly as it would
	// from an HCL wiring file.
	refs := scr.Needs["client"].Variables()
	require.Len(t, refs, 1)
	assert.Equal(t, "service.http_client.shared", hclexpr.TraversalKey(refs[0]))
}

func TestLoader_Load_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "screens: [",
			wantErr: "failed to decode YAML file",
		},
		{
			name: "screen entry without a name",
			content: `
screens:
  - screen_type: checkout
`,
			wantErr: "screen entry requires both screen_type and name",
		},
		{
			name: "invalid needs reference",
			content: `
screens:
  - screen_type: checkout
    name: main
    needs:
      client: "not a reference"
`,
			wantErr: "invalid needs reference",
		},
		{
			name: "default incompatible with declared type",
			content: `
screen_types:
  checkout:
    params:
      max_items:
        type: number
        default: lots
`,
			wantErr: "is not compatible with its type",
		},
		{
			name: "invalid type expression",
			content: `
screen_types:
  checkout:
    params:
      max_items:
        type: quantity
`,
			wantErr: `unknown primitive type "quantity"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeYAMLFile(t, dir, "bad.yaml", tc.content)

			_, _, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Load_MissingPathIgnored(t *testing.T) {
	model, _, err := NewLoader().Load(context.Background(), "/does/not/exist")

	require.NoError(t, err)
	assert.Empty(t, model.Screens)
	assert.Empty(t, model.Wiring.Screens)
}
