package scene

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"latent-stars/internal/starfield"
)

// Star-cloud shader. Every star is a two-triangle quad whose attributes ride
// raylib's fixed vertex slots: position = galactic frame, normal = latent
// frame, color = class color, texcoord = quad corner in [-0.5,0.5], texcoord2
// = point size. The vertex stage blends the two frames by the progress
// uniform, scales the point inversely with view depth (300px at unit depth,
// shrinking toward a uniform 1px as progress reaches 1) and offsets the corner
// in clip space so the quad always faces the camera; the fragment stage
// discards everything outside the inscribed disc.
const (
	starVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
in vec2 vertexTexCoord;
in vec2 vertexTexCoord2;
in vec4 vertexColor;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matView;
uniform float progress;
uniform vec2 viewport;
out vec2 fragCorner;
out vec4 fragColor;
void main() {
  vec3 blended = mix(vertexPosition, vertexNormal, progress);
  vec4 viewPos = matView * matModel * vec4(blended, 1.0);
  vec4 clipPos = mvp * vec4(blended, 1.0);
  float sizePx = mix(vertexTexCoord2.x, 1.0, progress) * (300.0 / -viewPos.z);
  clipPos.xy += vertexTexCoord * sizePx * 2.0 / viewport * clipPos.w;
  fragCorner = vertexTexCoord;
  fragColor = vertexColor;
  gl_Position = clipPos;
}
`
	starFS = `#version 330
in vec2 fragCorner;
in vec4 fragColor;
out vec4 finalColor;
void main() {
  if (dot(fragCorner, fragCorner) > 0.25) discard;
  finalColor = vec4(fragColor.rgb, 1.0);
}
`
)

// StarCloud owns the GPU side of the visualization: one uploaded mesh holding
// every star quad, the blend shader, and the uniform locations. Construction
// requires a live GL context; Release frees exactly what was allocated.
type StarCloud struct {
	mesh        rl.Mesh
	material    rl.Material
	progressLoc int32
	viewportLoc int32
	count       int
	releases    []func()
	released    bool
}

// NewStarCloud uploads the expanded star quads and compiles the blend shader.
// raylib frees mesh arrays with its own allocator on unload, so the vertex
// data is copied into raylib-owned memory rather than handed Go slices.
func NewStarCloud(q *starfield.QuadVertices) (*StarCloud, error) {
	shader := rl.LoadShaderFromMemory(starVS, starFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadShader(shader)
		return nil, fmt.Errorf("scene: star shader failed to compile")
	}

	c := &StarCloud{
		count:       q.VertexCount / 6,
		progressLoc: rl.GetShaderLocation(shader, "progress"),
		viewportLoc: rl.GetShaderLocation(shader, "viewport"),
	}

	c.mesh = rl.Mesh{
		VertexCount:   int32(q.VertexCount),
		TriangleCount: int32(q.VertexCount / 3),
	}
	c.mesh.Vertices = cFloats(q.Positions)
	c.mesh.Normals = cFloats(q.Normals)
	c.mesh.Colors = cBytes(q.Colors)
	c.mesh.Texcoords = cFloats(q.Corners)
	c.mesh.Texcoords2 = cFloats(q.Sizes)
	rl.UploadMesh(&c.mesh, false)
	c.releases = append(c.releases, func() { rl.UnloadMesh(&c.mesh) })

	c.material = rl.LoadMaterialDefault()
	c.material.Shader = shader
	// Unloading the material also unloads the shader riding on it.
	c.releases = append(c.releases, func() { rl.UnloadMaterial(c.material) })

	return c, nil
}

// Count returns the number of stars in the cloud.
func (c *StarCloud) Count() int {
	return c.count
}

// SetViewport pushes the framebuffer size uniform used to convert point
// pixel sizes into clip-space offsets.
func (c *StarCloud) SetViewport(width, height int32) {
	if c.viewportLoc >= 0 {
		rl.SetShaderValue(c.material.Shader, c.viewportLoc,
			[]float32{float32(width), float32(height)}, rl.ShaderUniformVec2)
	}
}

// Draw renders the cloud with the given model transform and blend progress.
// Backface culling is disabled for the draw: the quad corners are offset in
// clip space, and the whole dataset must stay eligible every frame since the
// blended positions have no fixed bounding volume.
func (c *StarCloud) Draw(transform rl.Matrix, progress float32) {
	if c.released {
		return
	}
	if c.progressLoc >= 0 {
		rl.SetShaderValue(c.material.Shader, c.progressLoc,
			[]float32{progress}, rl.ShaderUniformFloat)
	}
	rl.DisableBackfaceCulling()
	rl.DrawMesh(c.mesh, c.material, transform)
	rl.EnableBackfaceCulling()
}

// Release frees every GPU resource recorded at construction, exactly once.
func (c *StarCloud) Release() {
	if c.released {
		return
	}
	c.released = true
	for _, release := range c.releases {
		release()
	}
	c.releases = nil
}

// cFloats copies a float32 slice into raylib-owned memory.
func cFloats(src []float32) *float32 {
	p := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}

// cBytes copies a byte slice into raylib-owned memory.
func cBytes(src []uint8) *uint8 {
	p := (*uint8)(rl.MemAlloc(uint32(len(src))))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}
