package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

const orbitSegments = 72

// SceneRenderer draws a world onto a braille canvas. It satisfies
// sim.Renderer.
type SceneRenderer struct {
	Canvas     *Canvas
	Theme      Theme
	ShowOrbits bool
}

func NewSceneRenderer(c *Canvas, theme Theme) *SceneRenderer {
	return &SceneRenderer{Canvas: c, Theme: theme, ShowOrbits: true}
}

type projected struct {
	body  *celestial.Body
	x, y  int
	r     int
	depth float64
}

func (r *SceneRenderer) Render(w *sim.World) error {
	c := r.Canvas
	c.Clear()
	vp := c.Viewport()
	cam := w.Camera

	if r.ShowOrbits {
		for _, b := range w.Bodies.Planets() {
			r.circle(cam, vp, mgl64.Vec3{}, b.OrbitRadius, string(r.Theme.Orbit))
		}
	}

	bodies := make([]projected, 0, w.Bodies.Len())
	for _, b := range w.Bodies.All() {
		x, y, depth, ok := cam.Project(b.Position, vp)
		if !ok {
			continue
		}
		rad := int(math.Round(cam.ProjectedRadius(b.Position, b.Radius, vp)))
		bodies = append(bodies, projected{body: b, x: int(x), y: int(y), r: rad, depth: depth})
	}
	// Painter's order: far to near.
	sort.SliceStable(bodies, func(i, j int) bool { return bodies[i].depth > bodies[j].depth })
	for _, p := range bodies {
		c.FillDisc(p.x, p.y, p.r, r.bodyColor(p.body))
		if ring := p.body.Ring; ring != nil {
			r.circle(cam, vp, p.body.Position, ring.Inner, string(r.Theme.Ring))
			r.circle(cam, vp, p.body.Position, ring.Outer, string(r.Theme.Ring))
		}
	}

	w.Debris.Each(func(p *debris.Particle) {
		r.particle(cam, vp, p)
	})

	if tip := w.UI.Tooltip; tip.Visible() {
		c.Label(int(tip.X)/2, int(tip.Y)/4, tip.Text, string(r.Theme.Accent))
	}
	return nil
}

func (r *SceneRenderer) bodyColor(b *celestial.Body) string {
	if r.Theme.Mono || b.Color == "" {
		return string(r.Theme.Text)
	}
	return b.Color
}

func (r *SceneRenderer) particle(cam *scene.Camera, vp scene.Viewport, p *debris.Particle) {
	base := r.Theme.Star
	if p.Kind == debris.Meteorite {
		base = r.Theme.Meteorite
	}
	color := Fade(string(base), string(r.Theme.Background), p.Opacity)

	if len(p.Points) == 0 {
		if x, y, _, ok := cam.Project(p.Position, vp); ok {
			r.Canvas.Set(int(x), int(y), color)
		}
		return
	}
	for _, off := range p.Points {
		if x, y, _, ok := cam.Project(p.Position.Add(off), vp); ok {
			r.Canvas.Set(int(x), int(y), color)
		}
	}
}

// circle draws a horizontal circle of the given radius around center.
func (r *SceneRenderer) circle(cam *scene.Camera, vp scene.Viewport, center mgl64.Vec3, radius float64, color string) {
	var px, py int
	have := false
	for i := 0; i <= orbitSegments; i++ {
		a := 2 * math.Pi * float64(i) / orbitSegments
		p := center.Add(mgl64.Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)})
		x, y, _, ok := cam.Project(p, vp)
		if !ok {
			have = false
			continue
		}
		if have {
			r.Canvas.DrawLine(px, py, int(x), int(y), color)
		}
		px, py, have = int(x), int(y), true
	}
}
