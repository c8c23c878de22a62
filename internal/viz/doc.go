// Package viz is the interactive fluid painter, built on Bubble Tea.
//
// The grid is drawn with half-block characters, two cells per terminal
// row, next to a side panel with run status, solver parameters, the brush
// and an ink mass chart. Dragging with the mouse paints ink and pushes the
// fluid.
//
// # Key Bindings
//
//	Space   - Pause/Resume (painting still works while paused)
//	R       - Reset ink and velocity
//	U / S-U - Undo / Redo
//	E       - Toggle eraser
//	C       - Cycle ink colour
//	[ ]     - Shrink / grow the brush
//	Tab     - Select parameter, Up/Down to tune it
//	+ -     - Change grid resolution
//	P       - Export PNG
//	G       - Start/stop GIF recording
//	T       - Cycle color themes
//	?       - Show help overlay
//
// # Recording
//
// PNG and GIF files are written to the model's output directory.
package viz
