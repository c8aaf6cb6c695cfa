// Package graphics owns the window and the frame loop, keeping raylib's
// lifecycle in one place: everything GPU-related happens between InitWindow
// and CloseWindow.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const targetFPS = 60

// Config sets up the window before the loop starts.
type Config struct {
	Width  int32
	Height int32
	Title  string
}

// Run opens the window and drives the frame loop: each frame calls update
// with the frame time, then clears to black and calls draw. cleanup runs
// after the loop exits but before CloseWindow, since releasing GPU resources
// needs the live GL context.
func Run(cfg Config, update func(dt float32), draw func(), cleanup func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}

	cleanup()
	rl.CloseWindow()
}

// Display exposes the window as the mount target the viewer probes each
// frame.
type Display struct{}

// Ready reports whether the window and its GL context exist.
func (Display) Ready() bool {
	return rl.IsWindowReady()
}

// Size returns the current framebuffer size in pixels.
func (Display) Size() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

// Resized reports whether the window size changed this frame.
func (Display) Resized() bool {
	return rl.IsWindowResized()
}
