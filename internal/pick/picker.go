// Package pick resolves pointer positions to planets and keeps the tooltip
// and info panel state that front ends display.
package pick

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/scene"
)

// Hit is a ray intersection with a body.
type Hit struct {
	Body     *celestial.Body
	Distance float64
	Point    mgl64.Vec3
}

// Picker casts camera rays against the planets. The sun, the moon and debris
// are never pickable.
type Picker struct {
	Camera *scene.Camera
	Bodies *celestial.Registry
}

func NewPicker(cam *scene.Camera, reg *celestial.Registry) *Picker {
	return &Picker{Camera: cam, Bodies: reg}
}

// Pick returns the nearest planet under the NDC point.
func (p *Picker) Pick(ndc mgl64.Vec2) (Hit, bool) {
	hits := p.PickAll(ndc)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// PickAll returns every planet hit, nearest first. Equal distances keep
// catalogue order.
func (p *Picker) PickAll(ndc mgl64.Vec2) []Hit {
	ray := p.Camera.Ray(ndc)
	var hits []Hit
	for _, b := range p.Bodies.Planets() {
		if t, ok := ray.IntersectSphere(b.Position, b.Radius); ok {
			hits = append(hits, Hit{Body: b, Distance: t, Point: ray.At(t)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
