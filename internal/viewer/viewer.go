// Package viewer orchestrates the visualization lifecycle: kick off the
// catalog load, wait for the window, construct the renderer exactly once,
// drive it every frame and tear everything down idempotently.
package viewer

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"latent-stars/internal/blend"
	"latent-stars/internal/catalog"
	"latent-stars/internal/hud"
	"latent-stars/internal/logger"
	"latent-stars/internal/scene"
	"latent-stars/internal/starfield"
	"latent-stars/internal/viewerconfig"
)

// State is the lifecycle position. Transitions only move forward; TornDown is
// final.
type State int

const (
	Uninitialized State = iota
	DataLoading
	AwaitingMount
	Ready
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case DataLoading:
		return "DataLoading"
	case AwaitingMount:
		return "AwaitingMount"
	case Ready:
		return "Ready"
	case TornDown:
		return "TornDown"
	default:
		return "Unknown"
	}
}

// Renderer is what the viewer drives once Ready. scene.Scene implements it.
type Renderer interface {
	Update(dt float32)
	Draw()
	Resize(width, height int32)
	Release()
}

// Display is the mount target probed each frame before the renderer can be
// constructed. graphics.Display implements it.
type Display interface {
	Ready() bool
	Size() (width, height int32)
	Resized() bool
}

// BuildFunc constructs the renderer once data and display are both available.
type BuildFunc func(stars []catalog.Star, b *blend.Controller, prefs viewerconfig.Prefs, width, height int32) (Renderer, error)

// BuildScene is the production BuildFunc: instance buffers, quad expansion,
// GPU upload.
func BuildScene(stars []catalog.Star, b *blend.Controller, prefs viewerconfig.Prefs, width, height int32) (Renderer, error) {
	quads := starfield.Expand(starfield.Build(stars))
	return scene.New(quads, b, prefs.CameraRadius, width, height)
}

type loadResult struct {
	stars []catalog.Star
	err   error
}

// Viewer is the lifecycle state machine. All methods run on the frame loop;
// only the fetch goroutine runs elsewhere and reports back over a channel.
type Viewer struct {
	log     *logger.Logger
	prefs   viewerconfig.Prefs
	display Display
	build   BuildFunc
	overlay *hud.Overlay

	state    State
	blend    *blend.Controller
	loadCh   chan loadResult
	cancel   context.CancelFunc
	stars    []catalog.Star
	renderer Renderer
}

// New wires a viewer; nothing happens until Activate.
func New(prefs viewerconfig.Prefs, display Display, build BuildFunc, log *logger.Logger) *Viewer {
	return &Viewer{
		log:     log.WithComponent("viewer"),
		prefs:   prefs,
		display: display,
		build:   build,
		overlay: hud.New(prefs.ShowFPS, prefs.ShowProgress),
		blend:   blend.NewController(),
	}
}

// State returns the current lifecycle state.
func (v *Viewer) State() State {
	return v.state
}

// Activate starts the catalog fetch. Only the first call from Uninitialized
// does anything; repeated activation is a silent no-op.
func (v *Viewer) Activate(ctx context.Context) {
	if v.state != Uninitialized {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.loadCh = make(chan loadResult, 1)
	v.state = DataLoading
	go func() {
		stars, err := catalog.Fetch(ctx, v.prefs.DatasetSources, v.log)
		v.loadCh <- loadResult{stars: stars, err: err}
	}()
}

// Update advances the lifecycle one frame. While loading it polls the fetch
// without blocking; once data and a ready display coexist it constructs the
// renderer exactly once and arms the morph ramp; when Ready it forwards
// resizes before the draw, then ticks the blend and the renderer.
func (v *Viewer) Update(dt float32) {
	switch v.state {
	case DataLoading:
		select {
		case res := <-v.loadCh:
			if res.err != nil {
				// Terminal by omission: without data the viewer never
				// becomes Ready, it just keeps showing nothing.
				v.log.Error("catalog load failed", "error", res.err)
			}
			v.stars = res.stars
			v.state = AwaitingMount
		default:
		}
	case AwaitingMount:
		if v.stars == nil || !v.display.Ready() {
			return
		}
		width, height := v.display.Size()
		r, err := v.build(v.stars, v.blend, v.prefs, width, height)
		if err != nil {
			v.log.Error("renderer construction failed", "error", err)
			v.stars = nil
			return
		}
		v.renderer = r
		v.blend.Arm(v.prefs.MorphDelaySec, v.prefs.MorphDurationSec)
		v.state = Ready
		v.log.Info("renderer ready", "stars", len(v.stars))
	case Ready:
		if v.display.Resized() {
			width, height := v.display.Size()
			v.renderer.Resize(width, height)
		}
		v.blend.Update(dt)
		v.renderer.Update(dt)
	}
}

// Draw renders the current state: the scene plus overlay when Ready, a
// loading notice while the catalog is in flight, otherwise nothing.
func (v *Viewer) Draw() {
	switch v.state {
	case Ready:
		v.renderer.Draw()
		v.overlay.Draw(len(v.stars), v.blend.Progress())
	case DataLoading:
		drawCentered("loading star catalog...")
	}
}

// Teardown cancels any in-flight fetch and releases the renderer's GPU
// resources. Safe from any state and safe to call repeatedly; after it the
// viewer stays TornDown forever.
func (v *Viewer) Teardown() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.renderer != nil {
		v.renderer.Release()
		v.renderer = nil
	}
	v.stars = nil
	v.state = TornDown
}

func drawCentered(text string) {
	const size = 20
	w := rl.MeasureText(text, size)
	x := (int32(rl.GetScreenWidth()) - w) / 2
	y := int32(rl.GetScreenHeight()) / 2
	rl.DrawText(text, x, y, size, rl.Gray)
}
