package gui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	panelWidth  = 320
	thumbSize   = 128
	ringBands   = 6
	trailLength = 0.08 // seconds of travel drawn behind a shooting star
)

// Renderer draws the world with raylib. It satisfies sim.Renderer and must
// only be used from the thread that owns the window.
type Renderer struct {
	Theme      viz.Theme
	ShowOrbits bool
	Font       rl.Font
	Textures   *assets.Cache[rl.Texture2D]
	Driver     *sim.Driver

	log      *log.Logger
	warnings *rate.Limiter
	models   *models
}

func NewRenderer(theme viz.Theme, font rl.Font, textures *assets.Cache[rl.Texture2D], logger *log.Logger) *Renderer {
	return &Renderer{
		Theme:      theme,
		ShowOrbits: true,
		Font:       font,
		Textures:   textures,
		log:        logger,
		warnings:   rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

func (r *Renderer) Render(w *sim.World) error {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(r.color(r.Theme.Background))

	if r.models == nil && r.Textures != nil {
		r.models = r.loadModels(w)
	}

	rl.BeginMode3D(camera3D(w.Camera))
	if r.models != nil {
		r.models.drawSkybox(w.Camera.Position)
		if sun, ok := w.Bodies.Lookup(celestial.Sun); ok {
			r.models.setLight(sun.Position)
		}
	}
	if r.ShowOrbits {
		for _, b := range w.Bodies.Planets() {
			rl.DrawCircle3D(rl.Vector3{}, float32(b.OrbitRadius), rl.NewVector3(1, 0, 0), 90, r.color(r.Theme.Orbit))
		}
	}
	for _, b := range w.Bodies.All() {
		r.drawBody(b)
	}
	w.Debris.Each(r.drawParticle)
	rl.EndMode3D()

	r.drawHUD(w)
	return nil
}

// Close releases the scene models. Textures stay with the cache.
func (r *Renderer) Close() {
	if r.models != nil {
		r.models.unload()
		r.models = nil
	}
}

// drawBody draws the textured model when one exists and falls back to a flat
// sphere in the catalogue colour. Mono themes always use the flat sphere.
func (r *Renderer) drawBody(b *celestial.Body) {
	if r.models != nil && !r.Theme.Mono && r.models.drawBody(b) {
		if b.Ring == nil || r.models.hasRing {
			return
		}
		r.drawRingBands(b)
		return
	}

	pos := vec3(b.Position)
	col := hexColor(b.Color, rl.White)
	if r.Theme.Mono {
		col = r.color(r.Theme.Text)
	}
	rl.DrawSphere(pos, float32(b.Radius), col)

	if b.Kind == celestial.KindSun {
		rl.DrawSphereWires(pos, float32(b.Radius*1.15), 12, 24, rl.ColorAlpha(col, 0.15))
	}
	if b.Ring != nil {
		r.drawRingBands(b)
	}
}

func (r *Renderer) drawRingBands(b *celestial.Body) {
	ring := b.Ring
	pos := vec3(b.Position)
	ringCol := r.color(r.Theme.Ring)
	step := (ring.Outer - ring.Inner) / (ringBands - 1)
	for i := 0; i < ringBands; i++ {
		rad := ring.Inner + float64(i)*step
		rl.DrawCircle3D(pos, float32(rad), rl.NewVector3(1, 0, 0), 90, rl.ColorAlpha(ringCol, 0.6))
	}
}

func (r *Renderer) drawParticle(p *debris.Particle) {
	alpha := float32(p.Opacity)
	switch p.Kind {
	case debris.ShootingStar:
		col := rl.ColorAlpha(r.color(r.Theme.Star), alpha)
		head := vec3(p.Position)
		tail := vec3(p.Position.Sub(p.Velocity.Mul(trailLength)))
		rl.DrawLine3D(tail, head, col)
		rl.DrawSphere(head, 0.4, col)
	case debris.Meteorite:
		col := rl.ColorAlpha(r.color(r.Theme.Meteorite), alpha)
		for _, off := range p.Points {
			rl.DrawSphere(vec3(p.Position.Add(off)), 0.3, col)
		}
	}
}

func (r *Renderer) drawHUD(w *sim.World) {
	text := r.color(r.Theme.Text)
	muted := r.color(r.Theme.Muted)

	r.drawText("ORRERY", 24, 20, 20, text)
	status := "running"
	if r.Driver != nil {
		if r.Driver.Paused() {
			status = "paused"
		}
		r.drawText(fmt.Sprintf("%s  x%g", status, r.Driver.TimeScale()), 24, 46, 14, muted)
	}
	r.drawText(fmt.Sprintf("t=%.1fs  debris=%d  %d FPS", w.Elapsed, w.Debris.Count(), rl.GetFPS()), 24, 66, 14, muted)

	if tip := w.UI.Tooltip; tip.Visible() {
		r.drawText(tip.Text, int(tip.X), int(tip.Y), 16, rl.ColorAlpha(r.color(r.Theme.Accent), float32(tip.Opacity)))
	}
	if panel := w.UI.Panel; panel.Open {
		r.drawPanel(panel.Title, panel.Image, panel.HTML)
	}
}

func (r *Renderer) drawPanel(title, image, html string) {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	x := sw - panelWidth - 20
	rl.DrawRectangle(int32(x), 20, panelWidth, int32(sh-40), rl.ColorAlpha(r.color(r.Theme.Background), 0.85))
	rl.DrawRectangleLines(int32(x), 20, panelWidth, int32(sh-40), r.color(r.Theme.Muted))

	y := 36
	r.drawText(strings.ToUpper(title), x+16, y, 22, r.color(r.Theme.Accent))
	y += 36

	if image != "" {
		if tex, ok := r.texture(image); ok {
			scale := float32(thumbSize) / float32(tex.Width)
			rl.DrawTextureEx(tex, rl.NewVector2(float32(x+16), float32(y)), 0, scale, rl.White)
			y += int(float32(tex.Height)*scale) + 16
		}
	}

	for _, line := range wrapText(viz.StripHTML(html), (panelWidth-32)/8) {
		r.drawText(line, x+16, y, 14, r.color(r.Theme.Text))
		y += 18
	}
}

// texture fetches a texture from the cache. Failures are logged at most once
// per warning interval since this runs every frame.
func (r *Renderer) texture(path string) (rl.Texture2D, bool) {
	if r.Textures == nil || path == "" {
		return rl.Texture2D{}, false
	}
	tex, err := r.Textures.Get(path)
	if err != nil {
		if r.warnings.Allow() {
			r.log.Warn("texture unavailable", "path", path, "err", err)
		}
		return rl.Texture2D{}, false
	}
	return tex, true
}

func (r *Renderer) drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawTextEx(r.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (r *Renderer) color(c lipgloss.Color) rl.Color {
	return hexColor(string(c), rl.White)
}

func camera3D(c *scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec3(c.Position), vec3(c.Target), vec3(c.Up), float32(c.FOV), rl.CameraPerspective)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// hexColor parses a #rrggbb colour, returning fallback on failure.
func hexColor(s string, fallback rl.Color) rl.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	red, green, blue := c.Clamped().RGB255()
	return rl.NewColor(red, green, blue, 255)
}

// wrapText splits text into lines of at most width runes, breaking on spaces.
// Blank lines in the input are kept.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len([]rune(line))+1+len([]rune(word)) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
