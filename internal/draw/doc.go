// Package draw is the primitive vocabulary shared by every scene: the
// isometric projection, cubes and buildings, particle and pulse effects,
// indicator panels, charts, gauges and the background grid.
//
// # Time
//
// Every animated primitive takes the scene's local animation time t and
// derives motion from periodic functions of it (sin, cos, mod 1). Nothing
// accumulates between calls, so the same t always paints the same picture and
// very large t values stay well behaved.
//
// # Scale
//
// Sizes are given in design units and multiplied by a per-frame scale k so
// that a layout keeps its proportions at any viewport size.
package draw
