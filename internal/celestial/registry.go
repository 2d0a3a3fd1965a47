package celestial

import (
	"math"
	"strings"
)

// Source is the random source used to scatter start angles.
type Source interface {
	Float64() float64
}

// Registry maps stable IDs to bodies and remembers insertion order so
// iteration is deterministic.
type Registry struct {
	bodies map[ID]*Body
	order  []ID
}

func NewRegistry() *Registry {
	return &Registry{
		bodies: make(map[ID]*Body),
		order:  make([]ID, 0),
	}
}

// Add inserts b, replacing any body already stored under the same ID.
func (r *Registry) Add(b *Body) {
	if _, exists := r.bodies[b.ID]; !exists {
		r.order = append(r.order, b.ID)
	}
	r.bodies[b.ID] = b
}

func (r *Registry) Lookup(id ID) (*Body, bool) {
	b, ok := r.bodies[id]
	return b, ok
}

// FindByName does a case-insensitive name lookup.
func (r *Registry) FindByName(name string) (*Body, bool) {
	for _, id := range r.order {
		if b := r.bodies[id]; strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

func (r *Registry) Len() int { return len(r.order) }

// All returns every body in insertion order.
func (r *Registry) All() []*Body {
	out := make([]*Body, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bodies[id])
	}
	return out
}

// Planets returns the orbiting bodies in catalogue order.
func (r *Registry) Planets() []*Body {
	out := make([]*Body, 0, len(r.order))
	for _, id := range r.order {
		if b := r.bodies[id]; b.Orbits() {
			out = append(out, b)
		}
	}
	return out
}

// Randomize gives every planet a random start angle in [0, 2π) and
// repositions it on its orbit.
func (r *Registry) Randomize(rng Source) {
	for _, b := range r.Planets() {
		b.OrbitAngle = rng.Float64() * 2 * math.Pi
		b.PlaceOnOrbit()
	}
}
