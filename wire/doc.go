// Package wire is the seam between framework-driven screen construction and
// application-owned configuration.
//
// Screens are created by an external framework through a zero-argument path,
// so their required collaborators cannot arrive via a constructor. They are
// typed as allow-absent fields instead, injected by whatever code asked the
// framework for the screen, and verified at the screen's ready hook. This
// package provides that verification in two shapes:
//
//   - Check / MustWire scan an ordered list of named slots and fail on the
//     first one that was never injected, attributed to the owning screen type.
//   - CheckStruct / MustStruct do the same over the `wire`-tagged fields of a
//     screen struct, in declaration order.
//
// It also provides the two constructions that remove the runtime check
// altogether: Builder, which only ever yields a fully-wired instance, and
// Factory, which restores single-phase construction behind a factory the
// application controls.
package wire
