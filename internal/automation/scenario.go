// Package automation replays scripted interaction against a headless world:
// waits, pointer events, camera moves and time controls, with optional
// expectations on what the pointer picked.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

var (
	ErrInvalidStep = errors.New("invalid scenario step")
	ErrExpectation = errors.New("expectation failed")
)

// Scenario defines a scripted interaction sequence
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Preset      string   `yaml:"preset"`
	Viewport    Viewport `yaml:"viewport"`
	Steps       []Step   `yaml:"steps"`
}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is a single action. Exactly one field other than Expect is set.
type Step struct {
	Wait      *float64    `yaml:"wait,omitempty"`  // simulated seconds
	Move      *[2]float64 `yaml:"move,omitempty"`  // pointer pixel
	Click     *[2]float64 `yaml:"click,omitempty"` // pointer pixel
	Rotate    *[2]float64 `yaml:"rotate,omitempty"`
	Zoom      *float64    `yaml:"zoom,omitempty"`
	TimeScale *float64    `yaml:"time_scale,omitempty"`
	Pause     *bool       `yaml:"pause,omitempty"`
	Close     bool        `yaml:"close,omitempty"`
	// Expect names the body the step must pick; "none" expects a miss.
	Expect string `yaml:"expect,omitempty"`
}

// Action names the step's action.
func (s Step) Action() string {
	switch {
	case s.Wait != nil:
		return "wait"
	case s.Move != nil:
		return "move"
	case s.Click != nil:
		return "click"
	case s.Rotate != nil:
		return "rotate"
	case s.Zoom != nil:
		return "zoom"
	case s.TimeScale != nil:
		return "time_scale"
	case s.Pause != nil:
		return "pause"
	case s.Close:
		return "close"
	default:
		return ""
	}
}

func (s Step) count() int {
	n := 0
	for _, set := range []bool{s.Wait != nil, s.Move != nil, s.Click != nil, s.Rotate != nil,
		s.Zoom != nil, s.TimeScale != nil, s.Pause != nil, s.Close} {
		if set {
			n++
		}
	}
	return n
}

// StepResult records what a step did.
type StepResult struct {
	Index  int
	Action string
	Time   float64
	Frame  int
	Picked string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		sc.Viewport = Viewport{Width: 1280, Height: 720}
	}
	for i, step := range sc.Steps {
		if step.count() != 1 {
			return fmt.Errorf("%w %d: want exactly one action, got %d", ErrInvalidStep, i+1, step.count())
		}
		if step.Wait != nil && *step.Wait < 0 {
			return fmt.Errorf("%w %d: negative wait", ErrInvalidStep, i+1)
		}
		if step.Expect != "" && step.Move == nil && step.Click == nil {
			return fmt.Errorf("%w %d: expect needs a pointer action", ErrInvalidStep, i+1)
		}
	}
	return nil
}

// Run executes all steps against d, stepping fps frames per simulated second.
func (sc *Scenario) Run(ctx context.Context, d *sim.Driver, fps int, logger *log.Logger) ([]StepResult, error) {
	w := d.World()
	disp := w.Dispatcher(scene.Viewport{Width: sc.Viewport.Width, Height: sc.Viewport.Height})
	dt := 1 / float64(fps)
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		res := StepResult{Index: i + 1, Action: step.Action()}
		var hit pick.Hit
		picked := false

		switch {
		case step.Wait != nil:
			frames := int(math.Round(*step.Wait * float64(fps)))
			if err := d.RunFixed(ctx, frames, dt); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		case step.Move != nil:
			hit, picked = disp.Dispatch(pick.PointerMoved{X: step.Move[0], Y: step.Move[1]})
		case step.Click != nil:
			hit, picked = disp.Dispatch(pick.PointerClicked{X: step.Click[0], Y: step.Click[1]})
		case step.Rotate != nil:
			w.Controls.Rotate(step.Rotate[0], step.Rotate[1])
		case step.Zoom != nil:
			w.Controls.Dolly(*step.Zoom)
		case step.TimeScale != nil:
			if err := d.SetTimeScale(*step.TimeScale); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		case step.Pause != nil:
			d.SetPaused(*step.Pause)
		case step.Close:
			w.UI.Close()
		}

		if picked {
			res.Picked = hit.Body.Name
		}
		res.Time, res.Frame = w.Elapsed, w.Frame
		results = append(results, res)
		logger.Debug("step", "n", res.Index, "action", res.Action, "t", res.Time, "picked", res.Picked)

		if step.Expect != "" {
			want := step.Expect
			got := res.Picked
			if want == "none" {
				want = ""
			}
			if got != want {
				return results, fmt.Errorf("%w: step %d picked %q, want %q", ErrExpectation, i+1, got, step.Expect)
			}
		}
	}
	return results, nil
}
