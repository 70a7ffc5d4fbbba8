package dag

import (
	"context"
	"fmt"

	"github.com/screenwire/screenwire/internal/config"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/hclexpr"
)

// Build constructs a complete, validated dependency graph from a config model.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := &Graph{Nodes: make(map[string]*Node)}

	// First pass: create all nodes for screens and services.
	createNodes(ctx, model.Wiring, graph)
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.Nodes))

	// Second pass: link dependencies.
	if err := linkNodes(ctx, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Third pass: initialize counters.
	for _, node := range graph.Nodes {
		node.SetInitialCounters()
	}
	logger.Debug("Build: Counter initialization complete.")

	if err := graph.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

// createNodes performs the first pass of graph creation.
func createNodes(ctx context.Context, wiring *config.Wiring, graph *Graph) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range wiring.Screens {
		id := fmt.Sprintf("screen.%s.%s", s.ScreenType, s.Name)
		if _, exists := graph.Nodes[id]; exists {
			logger.Warn("Duplicate screen wiring found, it will be overwritten.", "id", id)
		}
		graph.Nodes[id] = &Node{
			ID:           id,
			Name:         s.Name,
			Type:         ScreenNode,
			ScreenConfig: s,
			Deps:         make(map[string]*Node),
			Dependents:   make(map[string]*Node),
		}
	}
	for _, svc := range wiring.Services {
		id := fmt.Sprintf("service.%s.%s", svc.ServiceType, svc.Name)
		if _, exists := graph.Nodes[id]; exists {
			logger.Warn("Duplicate service wiring found, it will be overwritten.", "id", id)
		}
		graph.Nodes[id] = &Node{
			ID:            id,
			Name:          svc.Name,
			Type:          ServiceNode,
			ServiceConfig: svc,
			Deps:          make(map[string]*Node),
			Dependents:    make(map[string]*Node),
		}
	}
}

// linkNodes performs the second pass, establishing dependency links.
func linkNodes(ctx context.Context, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node linking pass.")

	for _, node := range graph.Nodes {
		nodeLogger := logger.With("node_id", node.ID)
		nodeLogger.Debug("Processing dependencies for node.")
		var dependsOn []string
		references := hclexpr.NewContainer()

		if node.Type == ScreenNode {
			dependsOn = node.ScreenConfig.DependsOn
			for _, expr := range node.ScreenConfig.Needs {
				references.Add(expr)
			}
		} else { // ServiceNode
			dependsOn = node.ServiceConfig.DependsOn
		}

		if err := linkExplicitDeps(ctx, node, dependsOn, graph); err != nil {
			return err
		}
		if err := linkImplicitDeps(ctx, node, references, graph); err != nil {
			return err
		}
	}
	logger.Debug("Finished node linking pass.")
	return nil
}
