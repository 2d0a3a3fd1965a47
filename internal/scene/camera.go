package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default camera placement, looking down on the ecliptic from above and behind.
var (
	DefaultPosition = mgl64.Vec3{0, 80, 250}
	DefaultTarget   = mgl64.Vec3{0, 0, 0}
)

const (
	DefaultFOV  = 45.0 // degrees, vertical
	DefaultNear = 1.0
	DefaultFar  = 1500.0
)

// Viewport is the size of the drawing surface in pixels (or cells).
type Viewport struct {
	Width, Height float64
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return !(v.Width > 0 && v.Height > 0)
}

func (v Viewport) Aspect() float64 {
	if v.Empty() {
		return 1
	}
	return v.Width / v.Height
}

// NDC maps a pointer position in viewport pixels to normalized device
// coordinates: x in [-1, 1] left to right, y in [-1, 1] bottom to top.
// An empty viewport maps every position to the centre.
func NDC(x, y float64, vp Viewport) mgl64.Vec2 {
	if vp.Empty() {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/vp.Width*2 - 1,
		-(y/vp.Height)*2 + 1,
	}
}

// Camera is a perspective camera.
type Camera struct {
	Position, Target, Up mgl64.Vec3
	FOV                  float64 // degrees
	Near, Far            float64
	Aspect               float64
}

func NewCamera() *Camera {
	return &Camera{
		Position: DefaultPosition,
		Target:   DefaultTarget,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
	}
}

// SetViewport updates the aspect ratio. Degenerate viewports are ignored.
func (c *Camera) SetViewport(vp Viewport) {
	if !vp.Empty() {
		c.Aspect = vp.Aspect()
	}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Ray casts from the camera position through an NDC point.
func (c *Camera) Ray(ndc mgl64.Vec2) Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	far := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 1, 1})
	point := far.Vec3().Mul(1 / far.W())
	return Ray{
		Origin:    c.Position,
		Direction: point.Sub(c.Position).Normalize(),
	}
}

// Project maps a world point to viewport pixels. depth is the NDC z value;
// ok is false for points behind the camera or outside the clip volume.
func (c *Camera) Project(world mgl64.Vec3, vp Viewport) (x, y, depth float64, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * vp.Width
	y = (1 - ndc.Y()) / 2 * vp.Height
	return x, y, ndc.Z(), math.Abs(ndc.Z()) <= 1
}

// ProjectedRadius approximates the on-screen radius in pixels of a sphere of
// the given world radius centred at world.
func (c *Camera) ProjectedRadius(world mgl64.Vec3, radius float64, vp Viewport) float64 {
	d := world.Sub(c.Position).Len()
	if d <= radius {
		return vp.Height
	}
	half := mgl64.DegToRad(c.FOV) / 2
	return radius / (d * math.Tan(half)) * vp.Height / 2
}
