// Package export writes still images of a world as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
// Labels become text elements.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(header, width, height, width, height, theme.Background))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = string(theme.Text)
			}

			if r < 0x2800 || r > 0x28ff {
				sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="%.1f">%s</text>
`, float64(col)*scale*2, float64(row+1)*scale*4, fill, scale*3.5, html.EscapeString(string(r))))
				continue
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.Lit(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TopDownSVG draws the world seen from above: orbit circles, bodies at
// their current (x, z) positions and live debris.
func TopDownSVG(w *sim.World, size int, theme viz.Theme) string {
	extent := 1.0
	for _, b := range w.Bodies.All() {
		extent = math.Max(extent, math.Hypot(b.Position.X(), b.Position.Z())+b.Radius)
		extent = math.Max(extent, b.OrbitRadius)
	}
	// Add padding
	extent *= 1.1

	half := float64(size) / 2
	scale := half / extent
	toSVG := func(x, z float64) (float64, float64) {
		return half + x*scale, half + z*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(header, float64(size), float64(size), float64(size), float64(size), theme.Background))

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1">
`, theme.Orbit))
	for _, b := range w.Bodies.Planets() {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, half, half, b.OrbitRadius*scale))
	}
	sb.WriteString("</g>\n")

	for _, b := range w.Bodies.All() {
		x, y := toSVG(b.Position.X(), b.Position.Z())
		r := math.Max(b.Radius*scale, 1)
		fill := b.Color
		if fill == "" || theme.Mono {
			fill = string(theme.Text)
		}
		if ring := b.Ring; ring != nil {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="0.6"/>
`, x, y, (ring.Inner+ring.Outer)/2*scale, theme.Ring, math.Max((ring.Outer-ring.Inner)*scale, 1)))
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, fill))
		if b.Kind == celestial.KindPlanet {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10">%s</text>
`, x+r+2, y-r-2, theme.Muted, html.EscapeString(b.Name)))
		}
	}

	w.Debris.Each(func(p *debris.Particle) {
		fill := theme.Star
		if p.Kind == debris.Meteorite {
			fill = theme.Meteorite
		}
		x, y := toSVG(p.Position.X(), p.Position.Z())
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s" fill-opacity="%.2f"/>
`, x, y, fill, p.Opacity))
	})

	sb.WriteString("</svg>")
	return sb.String()
}
