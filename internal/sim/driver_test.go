package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
)

type bodySnapshot struct {
	angle, spin float64
	pos         [3]float64
}

type particleSnapshot struct {
	age, opacity float64
	pos          [3]float64
}

func snapshot(w *World) (map[celestial.ID]bodySnapshot, map[*debris.Particle]particleSnapshot) {
	bodies := make(map[celestial.ID]bodySnapshot)
	for _, b := range w.Bodies.All() {
		bodies[b.ID] = bodySnapshot{b.OrbitAngle, b.Spin, b.Position}
	}
	parts := make(map[*debris.Particle]particleSnapshot)
	w.Debris.Each(func(p *debris.Particle) {
		parts[p] = particleSnapshot{p.Age, p.Opacity, p.Position}
	})
	return bodies, parts
}

type retireLog struct{ opacities []float64 }

func (r *retireLog) OnSpawn(*debris.Particle)    {}
func (r *retireLog) OnRetire(p *debris.Particle) { r.opacities = append(r.opacities, p.Opacity) }

type countingMetric struct{ frames, sum float64 }

func (m *countingMetric) Name() string                 { return "counting" }
func (m *countingMetric) Observe(w *World, dt float64) { m.frames++; m.sum += dt }
func (m *countingMetric) Value() float64               { return m.frames }
func (m *countingMetric) Reset()                       { m.frames, m.sum = 0, 0 }

func fixedConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RandomizeOrbits = false
	cfg.Debris.Enabled = false
	return cfg
}

var _ = Describe("Driver", func() {
	var (
		cfg    *config.Config
		world  *World
		driver *Driver
	)

	BeforeEach(func() {
		cfg = fixedConfig()
		world = NewWorld(cfg, rand.New(rand.NewSource(1)))
		driver = NewDriver(world, nil)
	})

	Describe("orbit stepping", func() {
		It("moves Earth 0.12 rad in ten seconds at 0.012 rad/s", func() {
			Expect(driver.Tick(10)).To(Succeed())

			earth, ok := world.Bodies.Lookup(celestial.Earth)
			Expect(ok).To(BeTrue())
			Expect(earth.OrbitAngle).To(BeNumerically("~", 0.12, 1e-12))
			Expect(earth.Position.X()).To(BeNumerically("~", 79.425, 1e-3))
			Expect(earth.Position.Y()).To(BeZero())
			Expect(earth.Position.Z()).To(BeNumerically("~", 80*math.Sin(0.12), 1e-9))
		})

		It("scales dt by the time scale", func() {
			Expect(driver.SetTimeScale(2)).To(Succeed())
			Expect(driver.Tick(1)).To(Succeed())

			earth, _ := world.Bodies.Lookup(celestial.Earth)
			Expect(earth.OrbitAngle).To(BeNumerically("~", 0.024, 1e-12))
			Expect(world.Elapsed).To(Equal(2.0))
		})

		It("rejects invalid time scales", func() {
			Expect(driver.SetTimeScale(-1)).To(MatchError(ErrInvalidTimeScale))
			Expect(driver.SetTimeScale(0)).To(MatchError(ErrInvalidTimeScale))
			Expect(driver.SetTimeScale(math.Inf(1))).To(MatchError(ErrInvalidTimeScale))
			Expect(driver.SetTimeScale(math.NaN())).To(MatchError(ErrInvalidTimeScale))
			Expect(driver.TimeScale()).To(Equal(1.0))
		})

		It("keeps the moon with Earth", func() {
			for i := 0; i < 100; i++ {
				Expect(driver.Tick(0.5)).To(Succeed())
			}
			earth, _ := world.Bodies.Lookup(celestial.Earth)
			Expect(world.Moon.Position.Sub(earth.Position).Len()).To(BeNumerically("~", celestial.MoonOrbitOffset, 1e-9))
		})
	})

	Describe("a zero dt frame", func() {
		It("changes no body and no particle", func() {
			world.Debris.Spawn(debris.ShootingStar)
			world.Debris.Spawn(debris.Meteorite)
			Expect(driver.Tick(0.3)).To(Succeed())

			bodiesBefore, partsBefore := snapshot(world)
			Expect(driver.Tick(0)).To(Succeed())
			bodiesAfter, partsAfter := snapshot(world)

			Expect(bodiesAfter).To(Equal(bodiesBefore))
			Expect(partsAfter).To(Equal(partsBefore))
		})
	})

	Describe("spawning", func() {
		It("never spawns a kind twice within the cooldown", func() {
			cfg.Debris.Enabled = true
			cfg.Debris.SpawnChance = 1
			world = NewWorld(cfg, rand.New(rand.NewSource(9)))
			driver = NewDriver(world, nil)

			last := map[debris.Kind]float64{}
			count := map[debris.Kind]int{}
			for i := 0; i < 600; i++ {
				Expect(driver.Tick(1.0 / 60)).To(Succeed())
				for _, k := range debris.Kinds {
					if n := world.Debris.Spawned(k); n > count[k] {
						Expect(n - count[k]).To(Equal(1))
						Expect(world.Elapsed - last[k]).To(BeNumerically(">=", cfg.Debris.Cooldown-1e-9))
						last[k], count[k] = world.Elapsed, n
					}
				}
			}
			Expect(count[debris.ShootingStar]).To(BeNumerically(">", 10))
			Expect(count[debris.Meteorite]).To(BeNumerically(">", 10))
		})
	})

	Describe("a meteorite with a four second lifetime", func() {
		It("fades to zero and is gone after the fourth one-second frame", func() {
			log := &retireLog{}
			world.Debris.AddObserver(log)
			p := world.Debris.Spawn(debris.Meteorite)
			p.Lifetime = 4

			for i := 1; i <= 3; i++ {
				Expect(driver.Tick(1)).To(Succeed())
				Expect(world.Debris.Live(debris.Meteorite)).To(ContainElement(p))
				Expect(p.Opacity).To(BeNumerically("~", 1-float64(i)/4, 1e-12))
			}

			Expect(driver.Tick(1)).To(Succeed())
			Expect(world.Debris.Live(debris.Meteorite)).To(BeEmpty())
			Expect(log.opacities).To(Equal([]float64{0}))
		})
	})

	Describe("pointer over Mars", func() {
		var (
			vp   scene.Viewport
			disp *pick.Dispatcher
			x, y float64
		)

		BeforeEach(func() {
			for _, b := range world.Bodies.Planets() {
				if b.ID != celestial.Mars {
					b.OrbitAngle = math.Pi
					b.PlaceOnOrbit()
				}
			}
			Expect(driver.Tick(0)).To(Succeed())

			vp = scene.Viewport{Width: 1280, Height: 720}
			disp = world.Dispatcher(vp)

			mars, _ := world.Bodies.Lookup(celestial.Mars)
			var visible bool
			x, y, _, visible = world.Camera.Project(mars.Position, vp)
			Expect(visible).To(BeTrue())
		})

		It("shows a Mars tooltip on hover", func() {
			hit, ok := disp.Dispatch(pick.PointerMoved{X: x, Y: y})
			Expect(ok).To(BeTrue())
			Expect(hit.Body.Name).To(Equal("Mars"))
			Expect(world.UI.Tooltip.Text).To(Equal("Mars"))
			Expect(world.UI.Tooltip.Opacity).To(Equal(1.0))
		})

		It("opens the Mars panel on click", func() {
			disp.Dispatch(pick.PointerClicked{X: x, Y: y})
			Expect(world.UI.Panel.Open).To(BeTrue())
			Expect(world.UI.Panel.Title).To(Equal("Mars"))
		})

		It("returns the same result for repeated picks", func() {
			first, _ := disp.Dispatch(pick.PointerMoved{X: x, Y: y})
			for i := 0; i < 20; i++ {
				again, _ := disp.Dispatch(pick.PointerMoved{X: x, Y: y})
				Expect(again).To(Equal(first))
			}
		})
	})

	Describe("pause", func() {
		It("freezes the simulation but still updates controls and renders", func() {
			rendered := 0
			driver.SetRenderer(RendererFunc(func(*World) error { rendered++; return nil }))
			earth, _ := world.Bodies.Lookup(celestial.Earth)
			camBefore := world.Camera.Position

			driver.TogglePause()
			world.Controls.Rotate(0.5, 0)
			Expect(driver.Tick(1)).To(Succeed())

			Expect(driver.Paused()).To(BeTrue())
			Expect(earth.OrbitAngle).To(BeZero())
			Expect(world.Elapsed).To(BeZero())
			Expect(world.Camera.Position).NotTo(Equal(camBefore))
			Expect(rendered).To(Equal(1))
		})
	})

	Describe("rendering and metrics", func() {
		It("renders after the simulation step", func() {
			var seen float64
			driver.SetRenderer(RendererFunc(func(w *World) error {
				seen = w.Elapsed
				return nil
			}))
			Expect(driver.Tick(0.25)).To(Succeed())
			Expect(seen).To(Equal(0.25))
		})

		It("wraps renderer failures with the frame", func() {
			boom := errors.New("boom")
			driver.SetRenderer(RendererFunc(func(*World) error { return boom }))

			err := driver.Tick(0.1)
			Expect(err).To(MatchError(boom))
			var fe *FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(1))
		})

		It("feeds metrics the scaled dt", func() {
			m := &countingMetric{}
			driver.AddMetric(m)
			Expect(driver.SetTimeScale(3)).To(Succeed())
			Expect(driver.RunFixed(context.Background(), 10, 0.1)).To(Succeed())

			Expect(driver.Results()).To(HaveKeyWithValue("counting", 10.0))
			Expect(m.sum).To(BeNumerically("~", 3.0, 1e-9))
		})
	})

	Describe("Run", func() {
		It("needs a frame source", func() {
			Expect(driver.Run(context.Background(), nil)).To(MatchError(ErrNoFrameSource))
		})

		It("ticks once per frame and measures dt between frames", func() {
			frames := make(chan time.Time, 3)
			start := time.Now()
			frames <- start
			frames <- start.Add(100 * time.Millisecond)
			frames <- start.Add(200 * time.Millisecond)
			close(frames)

			Expect(driver.Run(context.Background(), frames)).To(Succeed())
			Expect(world.Frame).To(Equal(3))
			Expect(world.Elapsed).To(BeNumerically("~", 0.2, 1e-9))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(driver.Run(ctx, make(chan time.Time))).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("Clock", func() {
	It("returns zero on the first and on backwards timestamps", func() {
		var c Clock
		now := time.Now()
		Expect(c.Advance(now)).To(BeZero())
		Expect(c.Advance(now.Add(time.Second))).To(BeNumerically("~", 1.0, 1e-9))
		Expect(c.Advance(now)).To(BeZero())
		Expect(c.Advance(now.Add(1500 * time.Millisecond))).To(BeNumerically("~", 0.5, 1e-9))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs every seed for the configured duration", func() {
		cfg := config.DefaultConfig()
		cfg.Duration = 2
		cfg.FPS = 30

		results, err := NewEnsemble(cfg, 4, 100, func() []Metric {
			return []Metric{&countingMetric{}}
		}).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))

		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(r.Frames).To(Equal(60))
			Expect(r.Elapsed).To(BeNumerically("~", 2.0, 1e-9))
			Expect(r.Metrics).To(HaveKeyWithValue("counting", 60.0))
			for _, k := range debris.Kinds {
				Expect(r.Spawned[k] - r.Retired[k]).To(BeNumerically(">=", 0))
			}
		}
	})
})
