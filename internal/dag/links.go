package dag

import (
	"context"
	"fmt"

	"github.com/screenwire/screenwire/internal/address"
	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/hclexpr"
)

// linkExplicitDeps resolves dependencies from a `depends_on` list. Entries
// name an instance as `<type>.<name>` without a kind prefix; services are
// tried first, then screens.
func linkExplicitDeps(ctx context.Context, node *Node, dependsOn []string, graph *Graph) error {
	baseLogger := ctxlog.FromContext(ctx)

	for _, depRef := range dependsOn {
		logger := baseLogger.With("node_id", node.ID, "depends_on", depRef)
		logger.Debug("Resolving explicit dependency.")

		typeName, instanceName, err := address.ParsePair(depRef)
		if err != nil {
			return err
		}

		var depNode *Node
		for _, kind := range []address.Kind{address.KindService, address.KindScreen} {
			candidate := address.Address{Kind: kind, Type: typeName, Name: instanceName}
			if found, ok := graph.Nodes[candidate.String()]; ok {
				depNode = found
				break
			}
		}
		if depNode == nil {
			return fmt.Errorf("node '%s' depends on non-existent identifier '%s'", node.ID, depRef)
		}

		if _, exists := node.Deps[depNode.ID]; !exists {
			logger.Debug("Linking explicit dependency.", "from_node_id", node.ID, "to_node_id", depNode.ID)
			node.Deps[depNode.ID] = depNode
			depNode.Dependents[node.ID] = node
		}
	}
	return nil
}

// linkImplicitDeps creates dependency links from the variable traversals a
// node's expressions mention. Only traversals that name a wiring instance
// produce edges; anything else is ignored.
func linkImplicitDeps(ctx context.Context, node *Node, references *hclexpr.Container, graph *Graph) error {
	baseLogger := ctxlog.FromContext(ctx)

	for _, traversal := range references.References() {
		logger := baseLogger.With("node_id", node.ID, "traversal", formatTraversal(traversal))

		addr, ok := address.FromTraversal(traversal)
		if !ok {
			logger.Debug("Traversal does not name a wiring instance, ignoring as dependency.")
			continue
		}

		depNode, found := graph.Nodes[addr.String()]
		if !found {
			return fmt.Errorf("implicit dependency error in '%s': referenced instance '%s' does not exist", node.ID, addr)
		}

		if _, exists := node.Deps[depNode.ID]; !exists {
			logger.Debug("Linking implicit dependency.", "from", node.ID, "to", depNode.ID)
			node.Deps[depNode.ID] = depNode
			depNode.Dependents[node.ID] = node
		}
	}
	return nil
}
