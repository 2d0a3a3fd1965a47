package gui

import (
	_ "embed"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/sim"
)

var (
	//go:embed shaders/lit.vs
	litVS string
	//go:embed shaders/lit.fs
	litFS string
	//go:embed shaders/ring.fs
	ringFS string
)

const (
	sphereRings  = 32
	sphereSlices = 32
	skyboxHalf   = 400.0 // stays inside raylib's default far plane from any corner

	lightIntensity = 2.0
	lightRange     = 1000.0
	ambientLevel   = float32(0x33) / 255
)

// skyboxFaces are the starfield images, in +X, -X, +Y, -Y, +Z, -Z order.
var skyboxFaces = [6]string{
	"textures/skybox/right.png",
	"textures/skybox/left.png",
	"textures/skybox/top.png",
	"textures/skybox/bottom.png",
	"textures/skybox/front.png",
	"textures/skybox/back.png",
}

// skyFace is one inward-facing square of the skybox cube.
type skyFace struct {
	Forward, Up mgl64.Vec3
}

var skyFaceAxes = [6]skyFace{
	{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
	{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 0, -1}},
	{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
}

// Corners returns the face corners around center as seen from inside the
// cube: top left, bottom left, bottom right, top right.
func (f skyFace) Corners(center mgl64.Vec3, half float64) [4]mgl64.Vec3 {
	right := f.Forward.Cross(f.Up)
	at := func(x, y float64) mgl64.Vec3 {
		return center.Add(f.Forward.Add(right.Mul(x)).Add(f.Up.Mul(y)).Mul(half))
	}
	return [4]mgl64.Vec3{at(-1, 1), at(-1, -1), at(1, -1), at(1, 1)}
}

// axisAngle converts a rotation matrix into the axis and angle in degrees
// that rl.DrawModelEx takes. The identity maps to a zero turn about Y.
func axisAngle(m mgl64.Mat3) (mgl64.Vec3, float64) {
	q := mgl64.Mat4ToQuat(m.Mat4()).Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	w := mgl64.Clamp(q.W, -1, 1)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return mgl64.Vec3{0, 1, 0}, 0
	}
	return q.V.Mul(1 / s), mgl64.RadToDeg(2 * math.Acos(w))
}

// models owns the GPU meshes, shaders and materials of the scene. It is
// built on the first frame, once the GL context exists. Textures belong to
// the renderer's cache; a body whose texture fails to load has no model and
// is drawn as a flat sphere.
type models struct {
	lit    rl.Shader
	ringSh rl.Shader
	litLoc struct{ lightPos int32 }

	bodies  map[celestial.ID]rl.Model
	ring    rl.Model
	hasRing bool
	sky     [6]rl.Texture2D
	hasSky  bool
}

func (r *Renderer) loadModels(w *sim.World) *models {
	m := &models{bodies: make(map[celestial.ID]rl.Model)}

	m.lit = rl.LoadShaderFromMemory(litVS, litFS)
	m.litLoc.lightPos = rl.GetShaderLocation(m.lit, "lightPos")
	rl.SetShaderValue(m.lit, rl.GetShaderLocation(m.lit, "lightColor"), []float32{1, 1, 1}, rl.ShaderUniformVec3)
	rl.SetShaderValue(m.lit, rl.GetShaderLocation(m.lit, "lightIntensity"), []float32{lightIntensity}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.lit, rl.GetShaderLocation(m.lit, "lightRange"), []float32{lightRange}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.lit, rl.GetShaderLocation(m.lit, "ambient"), []float32{ambientLevel, ambientLevel, ambientLevel}, rl.ShaderUniformVec3)
	m.ringSh = rl.LoadShaderFromMemory(litVS, ringFS)

	for _, b := range w.Bodies.All() {
		tex, ok := r.texture(b.Texture)
		if !ok {
			continue
		}
		model := rl.LoadModelFromMesh(rl.GenMeshSphere(float32(b.Radius), sphereRings, sphereSlices))
		rl.SetMaterialTexture(model.Materials, rl.MapAlbedo, tex)
		// the sun is self-lit
		if b.Kind != celestial.KindSun {
			model.Materials.Shader = m.lit
		}
		m.bodies[b.ID] = model

		if ring := b.Ring; ring != nil && !m.hasRing {
			if rtex, ok := r.texture(ring.Texture); ok {
				size := float32(2 * ring.Outer)
				m.ring = rl.LoadModelFromMesh(rl.GenMeshPlane(size, size, 1, 1))
				rl.SetMaterialTexture(m.ring.Materials, rl.MapAlbedo, rtex)
				rl.SetShaderValue(m.ringSh, rl.GetShaderLocation(m.ringSh, "innerRatio"),
					[]float32{float32(ring.Inner / ring.Outer)}, rl.ShaderUniformFloat)
				m.ring.Materials.Shader = m.ringSh
				m.hasRing = true
			}
		}
	}

	m.hasSky = true
	for i, path := range skyboxFaces {
		tex, ok := r.texture(path)
		if !ok {
			m.hasSky = false
			break
		}
		m.sky[i] = tex
	}

	r.log.Debug("scene models loaded", "textured", len(m.bodies), "ring", m.hasRing, "skybox", m.hasSky)
	return m
}

// drawSkybox draws the starfield cube centred on the camera, behind
// everything else.
func (m *models) drawSkybox(eye mgl64.Vec3) {
	if !m.hasSky {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	for i, face := range skyFaceAxes {
		c := face.Corners(eye, skyboxHalf)
		rl.SetTexture(m.sky[i].ID)
		rl.Begin(rl.Quads)
		rl.Color4ub(255, 255, 255, 255)
		rl.TexCoord2f(0, 0)
		vertex(c[0])
		rl.TexCoord2f(0, 1)
		vertex(c[1])
		rl.TexCoord2f(1, 1)
		vertex(c[2])
		rl.TexCoord2f(1, 0)
		vertex(c[3])
		rl.End()
	}
	rl.SetTexture(0)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// setLight moves the point light to the sun.
func (m *models) setLight(sun mgl64.Vec3) {
	rl.SetShaderValue(m.lit, m.litLoc.lightPos, []float32{float32(sun.X()), float32(sun.Y()), float32(sun.Z())}, rl.ShaderUniformVec3)
}

// drawBody draws the textured model of b rotated by its spin and tilt. It
// reports false when b has no model.
func (m *models) drawBody(b *celestial.Body) bool {
	model, ok := m.bodies[b.ID]
	if !ok {
		return false
	}
	axis, deg := axisAngle(b.Frame())
	pos := vec3(b.Position)
	rl.DrawModelEx(model, pos, vec3(axis), float32(deg), rl.NewVector3(1, 1, 1), rl.White)

	if b.Ring != nil && m.hasRing {
		rl.DisableBackfaceCulling()
		rl.DrawModelEx(m.ring, pos, vec3(axis), float32(deg), rl.NewVector3(1, 1, 1), rl.White)
		rl.EnableBackfaceCulling()
	}
	return true
}

func (m *models) unload() {
	for _, model := range m.bodies {
		rl.UnloadModel(model)
	}
	if m.hasRing {
		rl.UnloadModel(m.ring)
	}
	rl.UnloadShader(m.lit)
	rl.UnloadShader(m.ringSh)
}

func vertex(v mgl64.Vec3) {
	rl.Vertex3f(float32(v.X()), float32(v.Y()), float32(v.Z()))
}
