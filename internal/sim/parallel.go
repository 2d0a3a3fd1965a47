package sim

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/debris"
)

// Summary is the outcome of one headless run.
type Summary struct {
	Seed    int64
	Frames  int
	Elapsed float64
	Spawned map[debris.Kind]int
	Retired map[debris.Kind]int
	Live    int
	Metrics map[string]float64
}

// Ensemble runs the same configuration under consecutive seeds in parallel.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns runs. newMetrics, if non-nil, builds a fresh
// metric set for every run.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]Summary, error) {
	results := make([]Summary, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			w := NewWorld(e.cfg, rand.New(rand.NewSource(seed)))
			d := NewDriver(w, nil)
			if err := d.SetTimeScale(e.cfg.TimeScale); err != nil {
				return err
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					d.AddMetric(m)
				}
			}

			frames := e.cfg.Frames()
			if err := d.RunFixed(ctx, frames, 1/float64(e.cfg.FPS)); err != nil {
				return err
			}
			results[idx] = Summarize(seed, d)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize captures the counters of a finished run.
func Summarize(seed int64, d *Driver) Summary {
	w := d.World()
	s := Summary{
		Seed:    seed,
		Frames:  w.Frame,
		Elapsed: w.Elapsed,
		Spawned: make(map[debris.Kind]int, len(debris.Kinds)),
		Retired: make(map[debris.Kind]int, len(debris.Kinds)),
		Live:    w.Debris.Count(),
		Metrics: d.Results(),
	}
	for _, k := range debris.Kinds {
		s.Spawned[k] = w.Debris.Spawned(k)
		s.Retired[k] = w.Debris.Retired(k)
	}
	return s
}
