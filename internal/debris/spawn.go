package debris

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
)

// Source is the injected random source. *math/rand.Rand satisfies it.
type Source interface {
	celestial.Source
	Intn(n int) int
}

// Spawn region shared by both kinds.
const (
	SpawnSpread = 300.0 // X and Z in [-150, 150]
	SpawnMinY   = 100.0
	SpawnMaxY   = 150.0
)

// Geometry describes the velocity and lifetime ranges of one kind.
type Geometry struct {
	Drift                    float64 // horizontal velocity in [-Drift, Drift]
	MinFall, MaxFall         float64 // downward speed
	MinLifetime, MaxLifetime float64
	MinPoints, MaxPoints     int // point cluster size, 0 for a single sphere
}

var geometries = map[Kind]Geometry{
	ShootingStar: {Drift: 0.5, MinFall: 2, MaxFall: 4, MinLifetime: 2, MaxLifetime: 4},
	Meteorite:    {Drift: 1, MinFall: 2, MaxFall: 5, MinLifetime: 3, MaxLifetime: 6, MinPoints: 5, MaxPoints: 10},
}

// GeometryOf returns the spawn ranges for k.
func GeometryOf(k Kind) Geometry {
	return geometries[k]
}

func randFloat(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randSpread(rng Source, spread float64) float64 {
	return spread * (0.5 - rng.Float64())
}

func randInt(rng Source, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// newParticle draws a fresh particle. The meteorite cluster is drawn first,
// then position, velocity and lifetime.
func newParticle(k Kind, rng Source, pool *PointPool) *Particle {
	g := GeometryOf(k)
	p := &Particle{Kind: k, Opacity: 1}

	if g.MaxPoints > 0 {
		n := randInt(rng, g.MinPoints, g.MaxPoints)
		p.Points = pool.Get(n)
		for i := range p.Points {
			p.Points[i] = mgl64.Vec3{randSpread(rng, 1), randSpread(rng, 1), randSpread(rng, 1)}
		}
	}

	p.Position = mgl64.Vec3{
		randSpread(rng, SpawnSpread),
		randFloat(rng, SpawnMinY, SpawnMaxY),
		randSpread(rng, SpawnSpread),
	}
	p.Velocity = mgl64.Vec3{
		randFloat(rng, -g.Drift, g.Drift),
		-randFloat(rng, g.MinFall, g.MaxFall),
		randFloat(rng, -g.Drift, g.Drift),
	}
	p.Lifetime = randFloat(rng, g.MinLifetime, g.MaxLifetime)
	return p
}
