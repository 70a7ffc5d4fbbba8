package dag

import (
	"sync"
	"sync/atomic"

	"github.com/screenwire/screenwire/internal/config"
)

// Graph is the complete, validated execution plan: every wired instance as
// a node, keyed by its canonical address string.
type Graph struct {
	Nodes map[string]*Node
}

// Node is a single vertex in the graph, representing either a screen to
// bring to its ready state or a service to provide.
type Node struct {
	// ID is the unique, machine-readable identifier for the node.
	// Example: "service.http_client.shared"
	ID string
	// Name is the human-readable instance name from the wiring.
	Name string
	// Type distinguishes between screen and service nodes.
	Type NodeType

	// ScreenConfig holds the wiring for a screen node. It is nil for services.
	ScreenConfig *config.ScreenInstance
	// ServiceConfig holds the wiring for a service node. It is nil for screens.
	ServiceConfig *config.ServiceInstance

	// Error stores any error that occurred while processing the node.
	Error error

	// Deps holds the set of nodes this node depends on (predecessors).
	Deps map[string]*Node
	// Dependents holds the set of nodes that depend on this node (successors).
	Dependents map[string]*Node

	// depCount is an atomic counter for unmet dependencies, used by the scheduler.
	depCount atomic.Int32
	// descendantCount counts a service's direct screen dependents, used for
	// releasing the service as soon as the last consumer finishes.
	descendantCount atomic.Int32
	// state is the node's current execution state, managed atomically.
	state atomic.Int32
	// releaseOnce ensures a service's release handler runs exactly once.
	releaseOnce sync.Once
	// skipOnce ensures a node is marked as skipped exactly once.
	skipOnce sync.Once
}

// NodeType distinguishes between different kinds of nodes in the graph.
type NodeType int

const (
	// ScreenNode represents a screen instance to be made ready.
	ScreenNode NodeType = iota
	// ServiceNode represents a stateful service instance.
	ServiceNode
)

// State represents the execution state of a node in the graph.
type State int32

const (
	// Pending indicates the node is waiting for its dependencies to complete.
	Pending State = iota
	// Running indicates the node is currently being executed by a worker.
	Running
	// Done indicates the node has completed execution successfully.
	Done
	// Failed indicates the node has failed execution or was skipped.
	Failed
)

// SetInitialCounters prepares the node for the executor by deriving its
// atomic counters from the final graph topology.
func (n *Node) SetInitialCounters() {
	n.depCount.Store(int32(len(n.Deps)))

	if n.Type == ServiceNode {
		var screenDependents int32
		for _, dependent := range n.Dependents {
			if dependent.Type == ScreenNode {
				screenDependents++
			}
		}
		n.descendantCount.Store(screenDependents)
	}
}

// DepCount atomically returns the current number of unmet dependencies.
func (n *Node) DepCount() int32 {
	return n.depCount.Load()
}

// DecrementDepCount atomically decrements the dependency counter and returns
// the new value.
func (n *Node) DecrementDepCount() int32 {
	return n.depCount.Add(-1)
}

// DescendantCount atomically returns the number of screen dependents that
// have not yet finished.
func (n *Node) DescendantCount() int32 {
	return n.descendantCount.Load()
}

// DecrementDescendantCount atomically decrements the screen dependent counter.
func (n *Node) DecrementDescendantCount() int32 {
	return n.descendantCount.Add(-1)
}

// SetState atomically sets the node's execution state.
func (n *Node) SetState(s State) {
	n.state.Store(int32(s))
}

// GetState atomically retrieves the node's execution state.
func (n *Node) GetState() State {
	return State(n.state.Load())
}

// Release executes the given cleanup function exactly once, making it safe
// to call from both the early-release path and the final cleanup stack.
func (n *Node) Release(f func()) {
	n.releaseOnce.Do(f)
}

// Skip marks a node as failed and decrements the WaitGroup counter. It uses
// a sync.Once to guarantee this happens only once, returning true if it was
// the first time this node was skipped.
func (n *Node) Skip(err error, wg *sync.WaitGroup) bool {
	var wasSkipped bool
	n.skipOnce.Do(func() {
		n.SetState(Failed)
		n.Error = err
		wg.Done()
		wasSkipped = true
	})
	return wasSkipped
}
