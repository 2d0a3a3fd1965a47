package sim

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/orrery/internal/orbit"
)

// Driver advances a World once per display frame.
type Driver struct {
	world     *World
	renderer  Renderer
	metrics   []Metric
	observers []Observer
	timeScale float64
	paused    bool
	clock     Clock
}

func NewDriver(w *World, r Renderer) *Driver {
	return &Driver{
		world:     w,
		renderer:  r,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		timeScale: 1,
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) World() *World          { return d.world }
func (d *Driver) SetRenderer(r Renderer) { d.renderer = r }
func (d *Driver) TimeScale() float64     { return d.timeScale }
func (d *Driver) Paused() bool           { return d.paused }
func (d *Driver) SetPaused(paused bool)  { d.paused = paused }
func (d *Driver) TogglePause()           { d.paused = !d.paused }

// SetTimeScale sets the multiplier applied to every frame's dt. Use
// SetPaused to freeze the simulation.
func (d *Driver) SetTimeScale(s float64) error {
	if !(s > 0) || math.IsNaN(s) || math.IsInf(s, 0) {
		return ErrInvalidTimeScale
	}
	d.timeScale = s
	return nil
}

// Tick runs one frame: sun rotation, planet orbits, moon orbit, debris
// update, spawn check, camera controls, then rendering. While paused the
// simulation steps are skipped but controls and rendering still run.
// Negative dt is treated as zero.
func (d *Driver) Tick(dt float64) error {
	w := d.world
	if dt < 0 {
		dt = 0
	}
	step := dt * d.timeScale
	if d.paused {
		step = 0
	}

	if !d.paused {
		orbit.RotateSun(w.Bodies, step)
		orbit.Advance(w.Bodies, step)
		orbit.AdvanceMoon(w.Bodies, step)
		w.Debris.Update(step)
		w.Debris.MaybeSpawn(step)
		w.Elapsed += step
	}
	w.Controls.Update()
	w.Frame++

	if d.renderer != nil {
		if err := d.renderer.Render(w); err != nil {
			return &FrameError{Frame: w.Frame, Time: w.Elapsed, Wrapped: err}
		}
	}

	for _, m := range d.metrics {
		m.Observe(w, step)
	}
	for _, o := range d.observers {
		o.OnFrame(w, step)
	}
	return nil
}

// Run ticks once per timestamp received on frames until the channel closes
// or ctx is cancelled. dt is measured between consecutive timestamps.
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time) error {
	if frames == nil {
		return ErrNoFrameSource
	}
	for _, m := range d.metrics {
		m.Reset()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if err := d.Tick(d.clock.Advance(now)); err != nil {
				return err
			}
		}
	}
}

// RunFixed ticks n frames of a fixed dt without waiting on a display.
func (d *Driver) RunFixed(ctx context.Context, n int, dt float64) error {
	for _, m := range d.metrics {
		m.Reset()
	}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := d.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}

// Results collects the current value of every metric.
func (d *Driver) Results() map[string]float64 {
	out := make(map[string]float64, len(d.metrics))
	for _, m := range d.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Clock turns display timestamps into frame deltas.
type Clock struct {
	prev    time.Time
	started bool
}

// Advance returns the seconds since the previous call. The first call, and
// any timestamp earlier than the previous one, yields zero.
func (c *Clock) Advance(now time.Time) float64 {
	if !c.started {
		c.prev, c.started = now, true
		return 0
	}
	dt := now.Sub(c.prev).Seconds()
	if dt < 0 {
		return 0
	}
	c.prev = now
	return dt
}

// Ticker adapts a time.Ticker to a frame channel. Stop releases it.
func Ticker(interval time.Duration) (frames <-chan time.Time, stop func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
