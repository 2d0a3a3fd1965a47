package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const DefaultDamping = 0.05

const (
	minPolar = 1e-3
	maxPolar = math.Pi - 1e-3
	idleEps  = 1e-9
)

// Controls orbits a camera around its target. Inputs accumulate into
// pending deltas; each Update applies a damped fraction of them.
type Controls struct {
	Camera      *Camera
	Damping     float64
	MinDistance float64
	MaxDistance float64

	theta, phi float64 // pending azimuth and polar deltas
	dolly      float64 // pending log-scale distance change
}

func NewControls(cam *Camera, damping float64) *Controls {
	if damping <= 0 || damping > 1 {
		damping = DefaultDamping
	}
	return &Controls{
		Camera:      cam,
		Damping:     damping,
		MinDistance: cam.Near * 10,
		MaxDistance: cam.Far * 0.9,
	}
}

// Rotate queues an azimuth (around the up axis) and polar rotation in radians.
func (c *Controls) Rotate(azimuth, polar float64) {
	c.theta += azimuth
	c.phi += polar
}

// Dolly queues a zoom. Positive amounts move the camera closer.
func (c *Controls) Dolly(amount float64) {
	c.dolly -= amount
}

func (c *Controls) ZoomIn()  { c.Dolly(0.2) }
func (c *Controls) ZoomOut() { c.Dolly(-0.2) }

// Pending reports whether queued motion is still being applied.
func (c *Controls) Pending() bool {
	return math.Abs(c.theta) > idleEps || math.Abs(c.phi) > idleEps || math.Abs(c.dolly) > idleEps
}

// Update applies one damping step and reports whether the camera moved.
func (c *Controls) Update() bool {
	if !c.Pending() {
		c.theta, c.phi, c.dolly = 0, 0, 0
		return false
	}

	cam := c.Camera
	offset := cam.Position.Sub(cam.Target)
	radius := offset.Len()
	theta := math.Atan2(offset.X(), offset.Z())
	phi := math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))

	theta += c.theta * c.Damping
	phi = mgl64.Clamp(phi+c.phi*c.Damping, minPolar, maxPolar)
	radius = mgl64.Clamp(radius*math.Exp(c.dolly*c.Damping), c.MinDistance, c.MaxDistance)

	sinPhi := math.Sin(phi)
	cam.Position = cam.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})

	decay := 1 - c.Damping
	c.theta *= decay
	c.phi *= decay
	c.dolly *= decay
	return true
}
