// Package viz draws draped tiles in the terminal.
//
//   - [Canvas]: Braille dot raster, 2x4 dots per cell
//   - [Camera] and [Render]: perspective wireframe of a scene
//   - [Model]: bubbletea live view; the mouse steers the wind
//   - [Picker]: preset menu in front of the live view
//   - [FrameToSVG] and [SaveGIF]: still and animated exports
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Reset cloth and camera
//	Arrows - Nudge wind direction
//	X/Y    - Rotate camera
//	+/-    - Zoom
//	T      - Cycle themes
//	G      - Toggle GIF recording
//	?      - Help overlay
package viz
