// Package viz draws a running engine in the terminal with Bubble Tea.
//
//   - [Model]: steps an engine every frame and draws it on a [Canvas]
//   - [Menu]: scenario picker and launch tuning in front of a Model
//   - [Canvas]: Braille pixel canvas with per-cell ink
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the first tick
//	+/-   - Zoom
//	T     - Toggle trails
//	C     - Cycle themes
//	?     - Show help overlay
//	Q     - Quit
package viz
