package pick

import "github.com/san-kum/orrery/internal/scene"

// Event is a pointer event in viewport pixels.
type Event interface {
	position() (x, y float64)
}

type PointerMoved struct{ X, Y float64 }

type PointerClicked struct{ X, Y float64 }

func (e PointerMoved) position() (float64, float64)   { return e.X, e.Y }
func (e PointerClicked) position() (float64, float64) { return e.X, e.Y }

// Dispatcher turns pointer events into tooltip and info panel updates. It
// reads body positions and writes only UI state.
type Dispatcher struct {
	Picker   *Picker
	UI       *UI
	Viewport scene.Viewport
}

func NewDispatcher(p *Picker, ui *UI, vp scene.Viewport) *Dispatcher {
	d := &Dispatcher{Picker: p, UI: ui}
	d.Resize(vp)
	return d
}

// Resize records the viewport size and updates the camera aspect.
func (d *Dispatcher) Resize(vp scene.Viewport) {
	d.Viewport = vp
	d.Picker.Camera.SetViewport(vp)
}

// Dispatch picks under the event position and updates the UI. Nothing is
// hit while the viewport is empty.
func (d *Dispatcher) Dispatch(ev Event) (Hit, bool) {
	x, y := ev.position()
	var (
		hit Hit
		ok  bool
	)
	if !d.Viewport.Empty() {
		hit, ok = d.Picker.Pick(scene.NDC(x, y, d.Viewport))
	}

	switch ev.(type) {
	case PointerMoved:
		if ok {
			d.UI.Tooltip = Tooltip{
				Text:    hit.Body.Name,
				X:       x + TooltipOffset,
				Y:       y + TooltipOffset,
				Opacity: 1,
			}
		} else {
			d.UI.Tooltip.Opacity = 0
		}
	case PointerClicked:
		if ok {
			d.UI.Panel = InfoPanel{
				Open:  true,
				Title: hit.Body.Name,
				Image: hit.Body.Texture,
				HTML:  hit.Body.Description,
			}
		} else {
			d.UI.Close()
		}
	}
	return hit, ok
}
