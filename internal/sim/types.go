package sim

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(w *World, dt float64)
	Value() float64
	Reset()
}

// Observer is called after every frame with the scaled dt applied.
type Observer interface {
	OnFrame(w *World, dt float64)
}

// Renderer draws the world. It runs last in every frame.
type Renderer interface {
	Render(w *World) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w *World) error

func (f RendererFunc) Render(w *World) error { return f(w) }
