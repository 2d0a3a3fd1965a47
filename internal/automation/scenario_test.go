package automation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

const tour = `
name: tour
description: hover and open Mars, then let time pass
viewport: {width: 800, height: 600}
steps:
  - move: [400, 300]
  - rotate: [0.2, 0]
  - zoom: -0.5
  - time_scale: 4
  - wait: 1.5
  - pause: true
  - click: [0, 0]
    expect: none
  - close: true
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(tour))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Name != "tour" || len(sc.Steps) != 8 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	want := []string{"move", "rotate", "zoom", "time_scale", "wait", "pause", "click", "close"}
	for i, step := range sc.Steps {
		if step.Action() != want[i] {
			t.Errorf("step %d: action %q, want %q", i+1, step.Action(), want[i])
		}
	}
	if sc.Steps[0].Move[0] != 400 || *sc.Steps[4].Wait != 1.5 {
		t.Error("step arguments not decoded")
	}
}

func TestParseScenarioRejectsBadSteps(t *testing.T) {
	tests := map[string]string{
		"two actions": "steps:\n  - wait: 1\n    zoom: 1\n",
		"no action":   "steps:\n  - expect: Mars\n",
		"negative":    "steps:\n  - wait: -1\n",
		"bad expect":  "steps:\n  - wait: 1\n    expect: Mars\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseScenario([]byte(doc)); !errors.Is(err, ErrInvalidStep) {
				t.Errorf("expected ErrInvalidStep, got %v", err)
			}
		})
	}

	sc, err := ParseScenario([]byte("steps: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Viewport.Width != 1280 || sc.Viewport.Height != 720 {
		t.Errorf("expected default viewport, got %+v", sc.Viewport)
	}
}

// marsDriver returns a driver whose world has Mars alone on the near side.
func marsDriver(t *testing.T) *sim.Driver {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.RandomizeOrbits = false
	cfg.Debris.Enabled = false
	w := sim.NewWorld(cfg, rand.New(rand.NewSource(1)))
	for _, b := range w.Bodies.Planets() {
		if b.ID != celestial.Mars {
			b.OrbitAngle = math.Pi
			b.PlaceOnOrbit()
		}
	}
	return sim.NewDriver(w, nil)
}

func TestRunScenario(t *testing.T) {
	d := marsDriver(t)
	w := d.World()
	vp := scene.Viewport{Width: 800, Height: 600}
	w.Camera.SetViewport(vp)
	mars, _ := w.Bodies.Lookup(celestial.Mars)
	x, y, _, ok := w.Camera.Project(mars.Position, vp)
	if !ok {
		t.Fatal("Mars should be on screen")
	}

	wait, paused := 2.0, true
	sc := &Scenario{
		Viewport: Viewport{Width: 800, Height: 600},
		Steps: []Step{
			{Move: &[2]float64{x, y}, Expect: "Mars"},
			{Click: &[2]float64{x, y}, Expect: "Mars"},
			{Pause: &paused},
			{Wait: &wait},
			{Click: &[2]float64{1, 1}, Expect: "none"},
		},
	}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	results, err := sc.Run(context.Background(), d, 30, logging.Discard())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if results[3].Frame != 60 {
		t.Errorf("wait of 2s at 30fps should tick 60 frames, got %d", results[3].Frame)
	}
	if w.Elapsed != 0 {
		t.Errorf("paused world advanced to %v", w.Elapsed)
	}
	if w.UI.Panel.Open {
		t.Error("click on empty space should close the panel")
	}
}

func TestRunScenarioExpectationFails(t *testing.T) {
	d := marsDriver(t)
	sc := &Scenario{Steps: []Step{{Click: &[2]float64{1, 1}, Expect: "Earth"}}}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	results, err := sc.Run(context.Background(), d, 30, logging.Discard())
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("expected ErrExpectation, got %v", err)
	}
	if len(results) != 1 || results[0].Picked != "" {
		t.Errorf("unexpected results %+v", results)
	}
}
