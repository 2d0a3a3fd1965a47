package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/sim"
)

// Collector exports frame and debris counters to Prometheus. Register it as
// both a sim.Observer and a debris.Observer.
type Collector struct {
	registry   *prometheus.Registry
	frames     prometheus.Counter
	frameDelta prometheus.Histogram
	simTime    prometheus.Gauge
	spawns     *prometheus.CounterVec
	retires    *prometheus.CounterVec
	live       *prometheus.GaugeVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Frames ticked by the driver",
		}),
		frameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_dt_seconds",
			Help:    "Simulated seconds advanced per frame",
			Buckets: []float64{0.001, 0.005, 0.01, 0.0167, 0.033, 0.05, 0.1, 0.25, 1},
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_sim_time_seconds",
			Help: "Simulated time elapsed",
		}),
		spawns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_debris_spawned_total",
				Help: "Debris particles spawned",
			},
			[]string{"kind"},
		),
		retires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_debris_retired_total",
				Help: "Debris particles retired at the end of their lifetime",
			},
			[]string{"kind"},
		),
		live: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orrery_debris_live",
				Help: "Live debris particles",
			},
			[]string{"kind"},
		),
	}

	c.registry.MustRegister(c.frames)
	c.registry.MustRegister(c.frameDelta)
	c.registry.MustRegister(c.simTime)
	c.registry.MustRegister(c.spawns)
	c.registry.MustRegister(c.retires)
	c.registry.MustRegister(c.live)

	return c
}

func (c *Collector) OnFrame(w *sim.World, dt float64) {
	c.frames.Inc()
	c.frameDelta.Observe(dt)
	c.simTime.Set(w.Elapsed)
	for _, k := range debris.Kinds {
		c.live.WithLabelValues(k.String()).Set(float64(len(w.Debris.Live(k))))
	}
}

func (c *Collector) OnSpawn(p *debris.Particle) {
	c.spawns.WithLabelValues(p.Kind.String()).Inc()
}

func (c *Collector) OnRetire(p *debris.Particle) {
	c.retires.WithLabelValues(p.Kind.String()).Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
