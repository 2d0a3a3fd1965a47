package debris

import "github.com/go-gl/mathgl/mgl64"

// Kind selects the spawn geometry and appearance of a particle.
type Kind int

const (
	ShootingStar Kind = iota
	Meteorite
)

func (k Kind) String() string {
	switch k {
	case ShootingStar:
		return "shooting_star"
	case Meteorite:
		return "meteorite"
	default:
		return "unknown"
	}
}

// Kinds lists every particle kind in update order.
var Kinds = []Kind{ShootingStar, Meteorite}

// Particle is a transient debris effect. It is alive while Age < Lifetime.
type Particle struct {
	Kind     Kind
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      float64
	Lifetime float64
	Opacity  float64
	// Points holds the jittered local offsets of a meteorite's point cluster.
	Points []mgl64.Vec3
}

// Fade is the fraction of the lifetime already used.
func (p *Particle) Fade() float64 {
	return p.Age / p.Lifetime
}

// Expired reports whether the particle reached the end of its lifetime.
func (p *Particle) Expired() bool {
	return p.Age >= p.Lifetime
}

// advance integrates position, ages the particle and recomputes opacity as
// a linear interpolation from 1 at age 0 to 0 at the end of the lifetime.
func (p *Particle) advance(dt float64) {
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Age += dt
	p.Opacity = lerp(1, 0, p.Fade())
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
