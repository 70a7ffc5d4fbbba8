package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode all possible top-level blocks from any
// file. Manifests and wiring may be mixed freely across files.
type fileRoot struct {
	ScreenTypes  []*ScreenTypeBlock  `hcl:"screen_type,block"`
	ServiceTypes []*ServiceTypeBlock `hcl:"service_type,block"`
	Screens      []*ScreenBlock      `hcl:"screen,block"`
	Services     []*ServiceBlock     `hcl:"service,block"`
	Remain       hcl.Body            `hcl:",remain"`
}

// Load orchestrates the entire HCL configuration loading process. It is
// agnostic to the origin of the paths and parses any valid block from any
// file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{
		Screens:  make(map[string]*config.ScreenDefinition),
		Services: make(map[string]*config.ServiceDefinition),
		Wiring:   &config.Wiring{},
	}

	hclFiles, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		// Translate and merge all discovered blocks into the model.
		for _, screenType := range root.ScreenTypes {
			def, err := l.translateScreenTypeDefinition(ctx, screenType)
			if err != nil {
				return nil, nil, err
			}
			model.Screens[def.Type] = def
		}
		for _, serviceType := range root.ServiceTypes {
			def, err := l.translateServiceTypeDefinition(ctx, serviceType)
			if err != nil {
				return nil, nil, err
			}
			model.Services[def.Type] = def
		}
		for _, screen := range root.Screens {
			model.Wiring.Screens = append(model.Wiring.Screens, l.translateScreenInstance(ctx, screen))
		}
		for _, service := range root.Services {
			model.Wiring.Services = append(model.Wiring.Services, l.translateServiceInstance(service))
		}
	}

	logger.Debug("HCL loading complete.",
		"screen_types", len(model.Screens),
		"service_types", len(model.Services),
		"screens", len(model.Wiring.Screens),
		"services", len(model.Wiring.Services),
	)
	return model, NewConverter(), nil
}
