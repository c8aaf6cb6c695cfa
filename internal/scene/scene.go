// Package scene renders the dual-frame star cloud: a perspective camera on a
// damped orbit, one instanced point mesh, and a shader that blends every star
// between its galactic and latent position by the morph progress.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"latent-stars/internal/blend"
	"latent-stars/internal/starfield"
)

// Cosmetic rotation applied to the whole cloud, radians per frame.
const (
	spinYawPerFrame   = 0.001
	spinPitchPerFrame = 0.0005
)

// Initial orbit placement; the radius comes from preferences.
const (
	startYaw   = 0.785
	startPitch = 0.35
	cameraFovy = 60
)

// Scene owns the camera, the star cloud and the slow cosmetic spin. Update
// runs input and damping; Draw polls the blend controller once and issues a
// single mesh draw between BeginMode3D and EndMode3D.
type Scene struct {
	Camera rl.Camera3D

	cloud *StarCloud
	blend *blend.Controller
	orbit Orbit

	spinYaw   float32
	spinPitch float32
}

// New builds the renderer from pre-expanded star quads. Requires a live GL
// context; the caller keeps ownership of the blend controller, the scene owns
// the GPU resources until Release.
func New(q *starfield.QuadVertices, b *blend.Controller, startRadius float32, width, height int32) (*Scene, error) {
	cloud, err := NewStarCloud(q)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		cloud: cloud,
		blend: b,
		orbit: Orbit{
			Yaw:    startYaw,
			Pitch:  startPitch,
			Radius: startRadius,
		},
	}
	s.Camera.Fovy = cameraFovy
	s.Camera.Projection = rl.CameraPerspective
	s.orbit.Apply(&s.Camera)
	cloud.SetViewport(width, height)
	return s, nil
}

// Update advances the orbit camera from this frame's input and accumulates
// the constant cloud spin.
func (s *Scene) Update(dt float32) {
	s.orbit.Step(readOrbitInput(), dt)
	s.orbit.Apply(&s.Camera)
	s.spinYaw += spinYawPerFrame
	s.spinPitch += spinPitchPerFrame
}

// Draw renders the cloud at the current blend progress.
func (s *Scene) Draw() {
	progress := s.blend.Progress()
	transform := rl.MatrixMultiply(rl.MatrixRotateX(s.spinPitch), rl.MatrixRotateY(s.spinYaw))
	rl.BeginMode3D(s.Camera)
	s.cloud.Draw(transform, progress)
	rl.EndMode3D()
}

// Resize pushes the new framebuffer size to the shader. raylib recomputes the
// camera projection from the framebuffer inside BeginMode3D, so updating the
// viewport uniform in the same tick keeps both consistent for the next draw.
func (s *Scene) Resize(width, height int32) {
	s.cloud.SetViewport(width, height)
}

// Count returns the number of stars in the cloud.
func (s *Scene) Count() int {
	return s.cloud.Count()
}

// Release frees the cloud's GPU resources. Safe to call more than once.
func (s *Scene) Release() {
	s.cloud.Release()
}
