package executor

import (
	"context"
	"fmt"

	"github.com/screenwire/screenwire/internal/ctxlog"
	"github.com/screenwire/screenwire/internal/dag"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *dag.Node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for node := range readyChan {
		workerLogger := logger.With("workerID", workerID, "nodeID", node.ID)

		if ctx.Err() != nil {
			if node.Skip(ctx.Err(), &e.wg) {
				workerLogger.Warn("Context canceled, skipping node execution.")
			}
			continue
		}

		workerLogger.Debug("Worker picked up node for execution.")
		node.SetState(dag.Running)
		var err error
		switch node.Type {
		case dag.ServiceNode:
			err = e.runServiceNode(ctx, node)
		case dag.ScreenNode:
			err = e.runScreenNode(ctx, node)
		}

		if err != nil {
			workerLogger.Error("Node execution failed.", "error", err)
			node.SetState(dag.Failed)
			node.Error = err
			cancel()
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Node execution succeeded.")
		node.SetState(dag.Done)

		for _, dependent := range node.Dependents {
			if dependent.DecrementDepCount() == 0 {
				workerLogger.Debug("Unlocking dependent node.", "dependentID", dependent.ID)
				readyChan <- dependent
			}
		}

		if node.Type == dag.ScreenNode {
			for _, dep := range node.Deps {
				if dep.Type == dag.ServiceNode {
					if dep.DecrementDescendantCount() == 0 {
						workerLogger.Debug("Scheduling early release for service.", "serviceID", dep.ID)
						go e.releaseService(ctx, dep)
					}
				}
			}
		}

		e.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// skipDependents recursively marks all downstream nodes as failed.
func (e *Executor) skipDependents(ctx context.Context, node *dag.Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		err := fmt.Errorf("skipped due to upstream failure of '%s'", node.ID)
		if dependent.Skip(err, &e.wg) {
			logger.Warn("Skipping dependent node due to upstream failure.", "nodeID", dependent.ID, "dependency", node.ID)
			e.skipDependents(ctx, dependent)
		}
	}
}
