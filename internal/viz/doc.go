// Package viz is the terminal front end of the simulation.
//
// [Model] is a Bubble Tea program that drives a sim.Loop, drawing it on a
// braille [Canvas] through [Surface] and showing a lipgloss side panel with
// the distance history of the selected planet.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Reset bodies
//	C     - Reset camera
//	+/-   - Zoom at the canvas center
//	Tab   - Select next planet
//	T     - Cycle color themes
//	Q/Esc - Quit
//
// The mouse pans (left drag) and zooms at the cursor (wheel).
package viz
