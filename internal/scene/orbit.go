package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	orbitSensitivity = 0.005  // radians per pixel of left drag
	panSensitivity   = 0.0015 // fraction of radius per pixel of right drag
	zoomStep         = 0.1    // radius shrink per wheel notch
	velocityDamping  = 0.85   // per-frame decay at the 60 FPS reference rate
	pitchLimit       = math32.Pi/2 - 0.01

	minOrbitRadius = 2
	maxOrbitRadius = 2000
)

// OrbitInput is one frame of camera input: drag deltas in pixels and the
// wheel movement in notches.
type OrbitInput struct {
	Orbit rl.Vector2
	Pan   rl.Vector2
	Wheel float32
}

// Orbit is a damped orbit camera around a movable target. Drag input feeds
// angular velocity which decays every frame, giving the view momentum after
// the mouse is released.
type Orbit struct {
	Target rl.Vector3
	Yaw    float32
	Pitch  float32
	Radius float32

	yawVel   float32
	pitchVel float32
}

// Step applies one frame of input and advances the damping. dt keeps the
// velocity decay frame-rate independent.
func (o *Orbit) Step(in OrbitInput, dt float32) {
	o.yawVel += in.Orbit.X * orbitSensitivity
	o.pitchVel += in.Orbit.Y * orbitSensitivity
	o.Yaw -= o.yawVel
	o.Pitch -= o.pitchVel
	if o.Pitch > pitchLimit {
		o.Pitch = pitchLimit
	} else if o.Pitch < -pitchLimit {
		o.Pitch = -pitchLimit
	}

	decay := math32.Pow(velocityDamping, dt*60)
	o.yawVel *= decay
	o.pitchVel *= decay

	if in.Wheel != 0 {
		o.Radius *= 1 - zoomStep*in.Wheel
	}
	if o.Radius < minOrbitRadius {
		o.Radius = minOrbitRadius
	} else if o.Radius > maxOrbitRadius {
		o.Radius = maxOrbitRadius
	}

	if in.Pan.X != 0 || in.Pan.Y != 0 {
		// Pan in the camera plane: right and up vectors from the current yaw.
		scale := panSensitivity * o.Radius
		sy, cy := math32.Sin(o.Yaw), math32.Cos(o.Yaw)
		o.Target.X -= cy * in.Pan.X * scale
		o.Target.Z += sy * in.Pan.X * scale
		o.Target.Y += in.Pan.Y * scale
	}
}

// Apply positions the camera on the orbit sphere looking at the target.
func (o *Orbit) Apply(cam *rl.Camera3D) {
	cp := math32.Cos(o.Pitch)
	cam.Position = rl.NewVector3(
		o.Target.X+o.Radius*cp*math32.Sin(o.Yaw),
		o.Target.Y+o.Radius*math32.Sin(o.Pitch),
		o.Target.Z+o.Radius*cp*math32.Cos(o.Yaw),
	)
	cam.Target = o.Target
	cam.Up = rl.NewVector3(0, 1, 0)
}

// readOrbitInput samples raylib's mouse state for the frame.
func readOrbitInput() OrbitInput {
	var in OrbitInput
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		in.Orbit = delta
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.Pan = delta
	}
	in.Wheel = rl.GetMouseWheelMove()
	return in
}
