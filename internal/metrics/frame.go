package metrics

import (
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/sim"
)

// SimFrameRate is frames per simulated second: the display rate divided by
// the time scale. Paused frames count without adding time.
type SimFrameRate struct {
	name    string
	frames  int
	elapsed float64
}

func NewSimFrameRate() *SimFrameRate {
	return &SimFrameRate{name: "frames_per_sim_second"}
}

func (f *SimFrameRate) Name() string { return f.name }

func (f *SimFrameRate) Observe(w *sim.World, dt float64) {
	f.frames++
	f.elapsed += dt
}

func (f *SimFrameRate) Value() float64 {
	if f.elapsed == 0 {
		return 0
	}
	return float64(f.frames) / f.elapsed
}

func (f *SimFrameRate) Reset() {
	f.frames = 0
	f.elapsed = 0
}

// DebrisLive is the mean number of live particles per frame.
type DebrisLive struct {
	name    string
	total   int
	samples int
}

func NewDebrisLive() *DebrisLive {
	return &DebrisLive{name: "debris_live"}
}

func (d *DebrisLive) Name() string { return d.name }

func (d *DebrisLive) Observe(w *sim.World, dt float64) {
	d.total += w.Debris.Count()
	d.samples++
}

func (d *DebrisLive) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.total) / float64(d.samples)
}

func (d *DebrisLive) Reset() {
	d.total = 0
	d.samples = 0
}

// Spawns is the number of particles the world has spawned so far.
type Spawns struct {
	name  string
	total int
}

func NewSpawns() *Spawns {
	return &Spawns{name: "spawns"}
}

func (s *Spawns) Name() string { return s.name }

func (s *Spawns) Observe(w *sim.World, dt float64) {
	s.total = 0
	for _, k := range debris.Kinds {
		s.total += w.Debris.Spawned(k)
	}
}

func (s *Spawns) Value() float64 { return float64(s.total) }

func (s *Spawns) Reset() { s.total = 0 }

// Standard returns the metric set reported by headless runs.
func Standard() []sim.Metric {
	return []sim.Metric{NewSimFrameRate(), NewDebrisLive(), NewSpawns()}
}
