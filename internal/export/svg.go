package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/grid"
)

const background = "#0a0a0a"

// GridToSVG draws every live cell of g as a square of side scale.
func GridToSVG(g *grid.Grid, scale float64, fill string) string {
	if g == nil {
		return ""
	}

	width := float64(g.Width()) * scale
	height := float64(g.Height()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill))

	// hairline gap between cells
	side := scale * 0.9
	for c, cell := range g.All() {
		if cell != grid.Alive {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(c.X)*scale, float64(c.Y)*scale, side, side))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PopulationToSVG plots a population series as a polyline scaled to fit
// width x height.
func PopulationToSVG(population []int, width, height int, strokeColor string) string {
	if len(population) < 2 {
		return ""
	}

	maxPop := population[0]
	minPop := population[0]
	for _, p := range population {
		if p > maxPop {
			maxPop = p
		}
		if p < minPop {
			minPop = p
		}
	}

	// Add padding
	rangeY := float64(maxPop - minPop)
	if rangeY == 0 {
		rangeY = 1
	}
	minY := float64(minPop) - rangeY*0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(population)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, p := range population {
		x := float64(i) * stepX
		y := float64(height) - (float64(p)-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
