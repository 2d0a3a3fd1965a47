package pick

// TooltipOffset is the pixel offset of the tooltip from the pointer.
const TooltipOffset = 10

// Tooltip floats next to the pointer while it hovers a planet.
type Tooltip struct {
	Text    string
	X, Y    float64
	Opacity float64
}

func (t Tooltip) Visible() bool { return t.Opacity > 0 }

// InfoPanel shows details of the last clicked planet.
type InfoPanel struct {
	Open  bool
	Title string
	Image string
	HTML  string
}

// UI is the overlay state written by the dispatcher.
type UI struct {
	Tooltip Tooltip
	Panel   InfoPanel
}

// Close hides the info panel.
func (u *UI) Close() {
	u.Panel = InfoPanel{}
}
