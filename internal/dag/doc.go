// Package dag builds the dependency graph for a wiring model.
//
// Each screen and service instance becomes one node. Edges come from two
// sources: explicit `depends_on` entries, and implicit references inside a
// screen's `needs` expressions (for example `service.http_client.shared`).
// The finished graph is validated for cycles and carries the atomic
// counters the executor's scheduler relies on.
package dag
