package pick

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/scene"
)

var vp = scene.Viewport{Width: 800, Height: 600}

// marsAlone puts Mars at (100, 0, 0) and every other planet on the far side.
func marsAlone() *celestial.Registry {
	reg := celestial.Default()
	for _, b := range reg.Planets() {
		if b.ID != celestial.Mars {
			b.OrbitAngle = math.Pi
		}
		b.PlaceOnOrbit()
	}
	return reg
}

func newDispatcher(reg *celestial.Registry) (*Dispatcher, *scene.Camera) {
	cam := scene.NewCamera()
	d := NewDispatcher(NewPicker(cam, reg), &UI{}, vp)
	return d, cam
}

func TestHoverAndClickMars(t *testing.T) {
	reg := marsAlone()
	d, cam := newDispatcher(reg)
	mars, _ := reg.Lookup(celestial.Mars)

	x, y, _, ok := cam.Project(mars.Position, vp)
	if !ok {
		t.Fatal("Mars should be on screen")
	}

	hit, ok := d.Dispatch(PointerMoved{X: x, Y: y})
	if !ok || hit.Body.Name != "Mars" {
		t.Fatalf("expected to pick Mars, got %+v", hit)
	}
	tip := d.UI.Tooltip
	if tip.Text != "Mars" || tip.Opacity != 1 {
		t.Errorf("unexpected tooltip %+v", tip)
	}
	if tip.X != x+TooltipOffset || tip.Y != y+TooltipOffset {
		t.Errorf("tooltip at (%v, %v), pointer at (%v, %v)", tip.X, tip.Y, x, y)
	}

	d.Dispatch(PointerClicked{X: x, Y: y})
	panel := d.UI.Panel
	if !panel.Open || panel.Title != "Mars" {
		t.Fatalf("unexpected panel %+v", panel)
	}
	if panel.Image != mars.Texture || panel.HTML != mars.Description {
		t.Error("panel should carry the texture and description of Mars")
	}
}

func TestMissHidesOverlays(t *testing.T) {
	d, _ := newDispatcher(marsAlone())
	d.UI.Tooltip = Tooltip{Text: "Earth", Opacity: 1}
	d.UI.Panel = InfoPanel{Open: true, Title: "Earth"}

	if _, ok := d.Dispatch(PointerMoved{X: 1, Y: 1}); ok {
		t.Fatal("corner of the screen should be empty")
	}
	if d.UI.Tooltip.Visible() {
		t.Error("tooltip should be hidden on a miss")
	}
	if d.UI.Panel.Title != "Earth" {
		t.Error("hover must not touch the panel")
	}

	d.Dispatch(PointerClicked{X: 1, Y: 1})
	if d.UI.Panel.Open {
		t.Error("click on empty space should close the panel")
	}
}

func TestPickDeterministic(t *testing.T) {
	reg := celestial.Default()
	reg.Randomize(rand.New(rand.NewSource(7)))
	d, _ := newDispatcher(reg)

	for _, px := range []mgl64.Vec2{{400, 300}, {520, 310}, {610, 290}, {300, 320}} {
		first, firstOK := d.Dispatch(PointerMoved{X: px.X(), Y: px.Y()})
		for i := 0; i < 50; i++ {
			again, ok := d.Dispatch(PointerMoved{X: px.X(), Y: px.Y()})
			if ok != firstOK || again.Body != first.Body || again.Distance != first.Distance {
				t.Fatalf("pick at %v changed between calls", px)
			}
		}
	}
}

func TestNearestPlanetWins(t *testing.T) {
	cam := scene.NewCamera()
	cam.SetViewport(vp)
	dir := cam.Target.Sub(cam.Position).Normalize()

	reg := celestial.NewRegistry()
	reg.Add(&celestial.Body{ID: "far", Name: "Far", Kind: celestial.KindPlanet, Radius: 5, Position: cam.Position.Add(dir.Mul(200))})
	reg.Add(&celestial.Body{ID: "near", Name: "Near", Kind: celestial.KindPlanet, Radius: 5, Position: cam.Position.Add(dir.Mul(100))})

	p := NewPicker(cam, reg)
	hit, ok := p.Pick(mgl64.Vec2{0, 0})
	if !ok || hit.Body.Name != "Near" {
		t.Fatalf("expected Near, got %+v", hit)
	}
	if math.Abs(hit.Distance-95) > 1e-6 {
		t.Errorf("expected distance 95, got %v", hit.Distance)
	}
	if all := p.PickAll(mgl64.Vec2{0, 0}); len(all) != 2 || all[1].Body.Name != "Far" {
		t.Errorf("expected both hits ordered by distance, got %d", len(all))
	}
}

func TestSunAndMoonNotPickable(t *testing.T) {
	cam := scene.NewCamera()
	cam.SetViewport(vp)
	dir := cam.Target.Sub(cam.Position).Normalize()

	reg := celestial.NewRegistry()
	reg.Add(&celestial.Body{ID: celestial.Sun, Name: "Sun", Kind: celestial.KindSun, Radius: 20})
	reg.Add(&celestial.Body{ID: celestial.Moon, Name: "Moon", Kind: celestial.KindMoon, Radius: 5, Position: cam.Position.Add(dir.Mul(100))})

	if hit, ok := NewPicker(cam, reg).Pick(mgl64.Vec2{0, 0}); ok {
		t.Errorf("picked %s", hit.Body.Name)
	}
}

func TestEmptyViewportMisses(t *testing.T) {
	cam := scene.NewCamera()
	d := NewDispatcher(NewPicker(cam, marsAlone()), &UI{}, scene.Viewport{})
	d.UI.Panel = InfoPanel{Open: true, Title: "Earth"}

	for _, ev := range []Event{PointerMoved{X: 5, Y: 5}, PointerClicked{X: 5, Y: 5}} {
		if hit, ok := d.Dispatch(ev); ok {
			t.Fatalf("%T hit %s at %v", ev, hit.Body.Name, hit.Distance)
		}
	}
	if d.UI.Tooltip.Visible() || d.UI.Panel.Open {
		t.Errorf("overlays should be hidden, got %+v", d.UI)
	}
	if cam.Aspect != 1 {
		t.Errorf("empty viewport changed aspect to %v", cam.Aspect)
	}
}
