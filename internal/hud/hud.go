package hud

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime stats in the top-right corner (green, default font).
type Overlay struct {
	ShowFPS      bool
	ShowProgress bool

	frameCount    uint32
	lastFPSText   string
	lastStatsText string
}

// New returns an overlay with the given lines enabled.
func New(showFPS, showProgress bool) *Overlay {
	return &Overlay{ShowFPS: showFPS, ShowProgress: showProgress}
}

// Draw renders the enabled overlay lines. Call after the 3D scene in the draw
// loop. Text is recomputed every updateInterval frames.
func (o *Overlay) Draw(starCount int, progress float32) {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.lastFPSText == "" && o.lastStatsText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if o.ShowFPS {
		if update {
			o.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(o.lastFPSText, screenW, y)
		y += lineHeight
	}

	if o.ShowProgress {
		if update {
			o.lastStatsText = fmt.Sprintf("stars: %d  morph: %3.0f%%", starCount, progress*100)
		}
		drawRight(o.lastStatsText, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
