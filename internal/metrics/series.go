package metrics

import (
	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/sim"
)

// Sample is one recorded frame.
type Sample struct {
	Time   float64
	Live   map[debris.Kind]int
	Angles map[celestial.ID]float64
}

// Series records a sample every Every frames. It is a sim.Observer.
type Series struct {
	Every   int
	Samples []Sample
	frame   int
}

func NewSeries(every int) *Series {
	if every < 1 {
		every = 1
	}
	return &Series{Every: every}
}

func (s *Series) OnFrame(w *sim.World, dt float64) {
	s.frame++
	if (s.frame-1)%s.Every != 0 {
		return
	}
	sample := Sample{
		Time:   w.Elapsed,
		Live:   make(map[debris.Kind]int, len(debris.Kinds)),
		Angles: make(map[celestial.ID]float64),
	}
	for _, k := range debris.Kinds {
		sample.Live[k] = len(w.Debris.Live(k))
	}
	for _, b := range w.Bodies.Planets() {
		sample.Angles[b.ID] = b.OrbitAngle
	}
	s.Samples = append(s.Samples, sample)
}

// Live returns the live count of kind k across samples.
func (s *Series) Live(k debris.Kind) []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = float64(smp.Live[k])
	}
	return out
}

// Angle returns the orbit angle of id across samples.
func (s *Series) Angle(id celestial.ID) []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Angles[id]
	}
	return out
}
