// Package orbit advances orbital angles and spins of the bodies in a
// [celestial.Registry].
//
// Orbits use a fixed angular speed per body:
//
//	angle += speed * dt
//	position = (r·cos(angle), 0, r·sin(angle))
//
// The moon is composed on top of Earth's transform through a pivot, so its
// world position is Earth's position plus Earth's frame applied to a locally
// rotated offset.
package orbit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/celestial"
)

// Advance moves every planet along its orbit and spins it about its own axis.
func Advance(reg *celestial.Registry, dt float64) {
	for _, b := range reg.Planets() {
		Step(b, dt)
	}
}

// Step advances a single orbiting body by dt seconds.
func Step(b *celestial.Body, dt float64) {
	b.OrbitAngle += b.OrbitSpeed * dt
	b.PlaceOnOrbit()
	b.Spin += b.SpinSpeed * dt
}

// RotateSun applies the sun's slow self-rotation. A registry without a sun
// is left untouched.
func RotateSun(reg *celestial.Registry, dt float64) {
	sun, ok := reg.Lookup(celestial.Sun)
	if !ok {
		return
	}
	sun.Spin += celestial.SunSpinSpeed * dt
}

// AdvanceMoon advances every satellite's pivot angle and recomputes its
// world position from the parent's current transform. Satellites whose
// parent is missing are skipped.
func AdvanceMoon(reg *celestial.Registry, dt float64) {
	for _, b := range reg.All() {
		sat := b.Satellite
		if sat == nil {
			continue
		}
		parent, ok := reg.Lookup(sat.Parent)
		if !ok {
			continue
		}
		sat.Angle += sat.Speed * dt
		b.Position = SatellitePosition(parent, sat)
	}
}

// SatellitePosition composes parent position, parent frame and the pivot
// rotation applied to the satellite's local offset.
func SatellitePosition(parent *celestial.Body, sat *celestial.Satellite) mgl64.Vec3 {
	local := mgl64.Rotate3DY(sat.Angle).Mul3x1(sat.Offset)
	return parent.Position.Add(parent.Frame().Mul3x1(local))
}
