package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/fsutil"
	"github.com/screenwire/screenwire/internal/hclcfg"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot mirrors the top-level structure of a YAML wiring or manifest
// file. As with HCL, any section may appear in any file.
type fileRoot struct {
	ScreenTypes  map[string]*screenTypeDoc  `yaml:"screen_types"`
	ServiceTypes map[string]*serviceTypeDoc `yaml:"service_types"`
	Screens      []*screenDoc               `yaml:"screens"`
	Services     []*serviceDoc              `yaml:"services"`
}

type screenTypeDoc struct {
	Description string               `yaml:"description"`
	Lifecycle   *lifecycleDoc        `yaml:"lifecycle"`
	Params      map[string]*paramDoc `yaml:"params"`
	Needs       map[string]*needsDoc `yaml:"needs"`
}

type serviceTypeDoc struct {
	Description string               `yaml:"description"`
	Lifecycle   *serviceLifecycleDoc `yaml:"lifecycle"`
	Params      map[string]*paramDoc `yaml:"params"`
}

type lifecycleDoc struct {
	OnReady string `yaml:"on_ready"`
}

type serviceLifecycleDoc struct {
	Provide string `yaml:"provide"`
	Release string `yaml:"release"`
}

type paramDoc struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Default     any    `yaml:"default"`
	Optional    bool   `yaml:"optional"`
}

type needsDoc struct {
	ServiceType string `yaml:"service_type"`
}

type screenDoc struct {
	ScreenType string            `yaml:"screen_type"`
	Name       string            `yaml:"name"`
	Params     map[string]any    `yaml:"params"`
	Needs      map[string]string `yaml:"needs"`
	DependsOn  []string          `yaml:"depends_on"`
}

type serviceDoc struct {
	ServiceType string         `yaml:"service_type"`
	Name        string         `yaml:"name"`
	Params      map[string]any `yaml:"params"`
	DependsOn   []string       `yaml:"depends_on"`
}

// Load discovers and parses all YAML files under the given paths and merges
// them into a single model. The returned Converter is the shared HCL one,
// since YAML values enter the model as synthesized HCL expressions.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{
		Screens:  make(map[string]*config.ScreenDefinition),
		Services: make(map[string]*config.ServiceDefinition),
		Wiring:   &config.Wiring{},
	}

	yamlFiles, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(yamlFiles))

	for _, file := range yamlFiles {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		var root fileRoot
		if err := yaml.Unmarshal(raw, &root); err != nil {
			return nil, nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		for typeName, doc := range root.ScreenTypes {
			def, err := translateScreenTypeDoc(ctx, typeName, doc)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Screens[typeName] = def
		}
		for typeName, doc := range root.ServiceTypes {
			def, err := translateServiceTypeDoc(ctx, typeName, doc)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Services[typeName] = def
		}
		for _, doc := range root.Screens {
			instance, err := translateScreenDoc(doc)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Wiring.Screens = append(model.Wiring.Screens, instance)
		}
		for _, doc := range root.Services {
			instance, err := translateServiceDoc(doc)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Wiring.Services = append(model.Wiring.Services, instance)
		}
	}

	logger.Debug("YAML loading complete.",
		"screen_types", len(model.Screens),
		"service_types", len(model.Services),
		"screens", len(model.Wiring.Screens),
		"services", len(model.Wiring.Services),
	)
	return model, hclcfg.NewConverter(), nil
}
