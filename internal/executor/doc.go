// Package executor walks a built dependency graph with a worker pool,
// providing services and bringing screens to their ready state.
//
// Services are provided exactly once and released exactly once, either
// early, as soon as their last consuming screen finishes, or from the LIFO
// cleanup stack when the run ends. A screen's ready handler only runs after
// every required dependency slot has been verified present; a missing slot
// fails the screen and skips everything downstream.
package executor
