package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
)

// Source is the random source shared by orbit scattering and debris spawns.
// *math/rand.Rand satisfies it.
type Source = debris.Source

// World is the whole simulation state. Front ends and the driver share one
// World by pointer.
type World struct {
	Bodies   *celestial.Registry
	Debris   *debris.Manager
	Camera   *scene.Camera
	Controls *scene.Controls
	Picker   *pick.Picker
	UI       *pick.UI

	Sun  *celestial.Body
	Moon *celestial.Body

	Elapsed float64
	Frame   int
}

// NewWorld builds the solar system and its collaborators from cfg.
func NewWorld(cfg *config.Config, rng Source) *World {
	reg := celestial.Default()
	if cfg.RandomizeOrbits {
		reg.Randomize(rng)
	}
	orbit.AdvanceMoon(reg, 0)

	cam := scene.NewCamera()
	cam.Position = mgl64.Vec3(cfg.Camera.Position)
	cam.Target = mgl64.Vec3(cfg.Camera.Target)
	cam.FOV = cfg.Camera.FOV
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far

	w := &World{
		Bodies: reg,
		Debris: debris.NewManager(debris.Config{
			Cooldown:    cfg.Debris.Cooldown,
			SpawnChance: cfg.Debris.SpawnChance,
			Disabled:    !cfg.Debris.Enabled,
		}, rng),
		Camera:   cam,
		Controls: scene.NewControls(cam, cfg.Camera.Damping),
		UI:       &pick.UI{},
	}
	w.Picker = pick.NewPicker(cam, reg)
	w.Sun, _ = reg.Lookup(celestial.Sun)
	w.Moon, _ = reg.Lookup(celestial.Moon)
	return w
}

// Dispatcher returns a pointer dispatcher bound to the world's picker and UI.
func (w *World) Dispatcher(vp scene.Viewport) *pick.Dispatcher {
	return pick.NewDispatcher(w.Picker, w.UI, vp)
}
