// Package viz is the terminal front end of orrery.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: frame clock, keyboard and mouse handling, side panel
//   - [SceneRenderer]: projects the world onto a [Canvas]
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	Arrows  - Orbit the camera
//	+/-     - Zoom
//	[ ]     - Halve/double the time scale
//	T       - Cycle color themes
//	O       - Toggle orbit paths
//	Esc     - Close the info panel
//	?       - Show help
//
// Hovering a planet with the mouse shows its name next to the pointer;
// clicking opens its description in the side panel.
package viz
