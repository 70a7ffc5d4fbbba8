// Package hclexpr provides a container for collecting HCL expressions and
// extracting the instance references they mention.
package hclexpr

import (
	"sort"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., service.http_client.shared
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// Container is a thread-safe helper that gathers the HCL expressions of a
// wiring block and reports the unique variable traversals they contain. The
// graph builder uses those traversals to discover implicit dependencies
// between instances.
type Container struct {
	// analyzeOnce ensures the extraction logic runs exactly once.
	analyzeOnce sync.Once

	mu          sync.RWMutex
	expressions []hcl.Expression

	references []hcl.Traversal
}

// NewContainer creates a new, empty expression container.
func NewContainer() *Container {
	return &Container{}
}

// Add adds one or more expressions to the container for analysis.
// It safely ignores any nil expressions.
func (c *Container) Add(exprs ...hcl.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Adding new expressions requires resetting the sync.Once so analysis can
	// run again. Safe as long as Add is not called concurrently with
	// References; all Adds happen during the single-threaded loading phase.
	c.analyzeOnce = sync.Once{}

	for _, expr := range exprs {
		if expr != nil {
			c.expressions = append(c.expressions, expr)
		}
	}
}

// analyze performs the traversal extraction, guaranteed to run only once for
// a given set of expressions.
func (c *Container) analyze() {
	c.analyzeOnce.Do(func() {
		c.mu.RLock()
		refs := extractReferences(c.expressions...)
		c.mu.RUnlock()

		c.mu.Lock()
		c.references = refs
		c.mu.Unlock()
	})
}

// References returns all unique variable traversals found in the expressions,
// sorted by their canonical string form.
func (c *Container) References() []hcl.Traversal {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.references
}

// extractReferences collects the unique variable traversals of the given
// expressions in a deterministic order.
func extractReferences(exprs ...hcl.Expression) []hcl.Traversal {
	traversals := make(map[string]hcl.Traversal)

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, traversal := range expr.Variables() {
			traversals[TraversalKey(traversal)] = traversal
		}
	}

	keys := make([]string, 0, len(traversals))
	for k := range traversals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]hcl.Traversal, 0, len(traversals))
	for _, k := range keys {
		result = append(result, traversals[k])
	}
	return result
}
