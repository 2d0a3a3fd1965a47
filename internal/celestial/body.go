package celestial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ID is the stable key of a body in a Registry.
type ID string

const (
	Sun     ID = "sun"
	Mercury ID = "mercury"
	Venus   ID = "venus"
	Earth   ID = "earth"
	Mars    ID = "mars"
	Jupiter ID = "jupiter"
	Saturn  ID = "saturn"
	Uranus  ID = "uranus"
	Neptune ID = "neptune"
	Moon    ID = "moon"
)

type Kind int

const (
	KindSun Kind = iota
	KindPlanet
	KindMoon
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Body is a sun, planet or moon with its orbital and spin state.
// OrbitAngle grows without bound; only its sine and cosine are used.
type Body struct {
	ID          ID
	Name        string
	Kind        Kind
	Radius      float64
	OrbitRadius float64
	OrbitAngle  float64 // radians
	OrbitSpeed  float64 // rad/s
	SpinSpeed   float64 // rad/s
	AxialTilt   float64 // degrees
	Spin        float64 // accumulated rotation about the local Y axis
	Position    mgl64.Vec3
	Texture     string
	Color       string
	Description string // HTML
	Ring        *Ring
	Satellite   *Satellite
}

// Ring is a flat annulus in the parent's equatorial plane.
type Ring struct {
	Inner, Outer float64
	Texture      string
}

// Satellite describes a secondary orbit composed on top of the parent's
// transform through an invisible pivot.
type Satellite struct {
	Parent ID
	Offset mgl64.Vec3
	Angle  float64
	Speed  float64
}

// Orbits reports whether the body circles the origin.
func (b *Body) Orbits() bool {
	return b.Kind == KindPlanet
}

// TiltRadians returns the axial tilt in radians.
func (b *Body) TiltRadians() float64 {
	return mgl64.DegToRad(b.AxialTilt)
}

// PlaceOnOrbit recomputes Position from OrbitRadius and OrbitAngle.
func (b *Body) PlaceOnOrbit() {
	b.Position = mgl64.Vec3{
		b.OrbitRadius * math.Cos(b.OrbitAngle),
		0,
		b.OrbitRadius * math.Sin(b.OrbitAngle),
	}
}

// Frame returns the rotation applied to the body's children: spin about Y
// after the axial tilt about Z.
func (b *Body) Frame() mgl64.Mat3 {
	return mgl64.Rotate3DY(b.Spin).Mul3(mgl64.Rotate3DZ(b.TiltRadians()))
}
