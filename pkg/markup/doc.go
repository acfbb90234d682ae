// Package markup generates static HTML from placed canvas components.
//
// Generation is a pure function over the placement store contents:
// components are partitioned into the three page regions (insertion order
// preserved within each region), each component type is substituted
// through a fixed template, and the rendered groups are embedded into a
// fixed document skeleton with exactly three insertion points.
//
// The same input always yields byte-identical output. Generating from an
// empty component list is a guarded precondition: callers must surface
// [ErrEmptyCanvas] as a user-facing notice rather than attempt it.
package markup
