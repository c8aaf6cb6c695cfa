// Package blend owns the morph progress scalar: 0 renders the galactic frame,
// 1 the latent frame. The renderer polls Progress once per frame; the ramp is
// armed once when the renderer is constructed and runs to completion.
package blend

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Controller holds the blend progress and the one-shot tween driving it.
// All methods run on the frame loop; the zero progress state renders the
// galactic layout.
type Controller struct {
	progress float32
	delay    float32
	tween    *gween.Tween
	armed    bool
	finished bool
}

// NewController returns a controller at progress 0 with no ramp armed.
func NewController() *Controller {
	return &Controller{}
}

// Arm schedules the one-shot ease-in-out ramp from 0 to 1: it waits delay
// seconds, then runs for duration seconds. Arming twice is a no-op.
func (c *Controller) Arm(delay, duration float32) {
	if c.armed {
		return
	}
	c.armed = true
	c.delay = delay
	c.tween = gween.New(0, 1, duration, ease.InOutQuad)
}

// Update advances the ramp by dt seconds. Frame time spent finishing the
// delay carries over into the tween so the ramp duration stays exact.
func (c *Controller) Update(dt float32) {
	if !c.armed || c.finished {
		return
	}
	if c.delay > 0 {
		c.delay -= dt
		if c.delay >= 0 {
			return
		}
		dt = -c.delay
		c.delay = 0
	}
	c.progress, c.finished = c.tween.Update(dt)
}

// Progress returns the current blend factor in [0,1].
func (c *Controller) Progress() float32 {
	return c.progress
}

// SetProgress overrides the blend factor, clamped to [0,1].
func (c *Controller) SetProgress(v float32) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	c.progress = v
}

// Finished reports whether the ramp has run to completion.
func (c *Controller) Finished() bool {
	return c.finished
}
