// Package canvas implements the page-builder placement engine.
//
// The engine has three parts:
//
//   - The component catalog: a static, per-region list of placeable
//     archetypes (heading, navigation, button, ...). See [Catalog].
//   - The placement store: an ordered collection of placed components,
//     the single source of truth for canvas state. See [Store].
//   - The pointer interaction controller: a small state machine that
//     turns pointer events (drop, select, press/move/release, delete)
//     into store mutations. See [Controller].
//
// All mutations are synchronous and happen on the caller's goroutine in
// the order events are delivered. The store has a single writer (the
// controller); hosts that introduce concurrent writers must serialize
// access themselves.
//
// Canvas geometry is passed into every drop/move call rather than cached,
// since the host layout can change between interactions.
package canvas
