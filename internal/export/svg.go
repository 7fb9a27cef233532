package export

import (
	"fmt"
	"strings"
)

// DefaultColors is used for series beyond the ones given colors explicitly.
var DefaultColors = []string{"#ff5555", "#55ff55", "#5599ff", "#ffcc00"}

// SeriesToSVG renders each series as a polyline against its step index. All
// series share one vertical scale.
func SeriesToSVG(series [][]float64, colors []string, width, height int) string {
	n := 0
	for _, s := range series {
		n = max(n, len(s))
	}
	if n < 2 {
		return ""
	}

	// Find bounds
	first := true
	var minY, maxY float64
	for _, s := range series {
		for _, v := range s {
			if first {
				minY, maxY = v, v
				first = false
				continue
			}
			minY = min(minY, v)
			maxY = max(maxY, v)
		}
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(n - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for idx, s := range series {
		if len(s) < 2 {
			continue
		}
		color := seriesColor(colors, idx)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))

		for i, v := range s {
			x := float64(i) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func seriesColor(colors []string, idx int) string {
	if idx < len(colors) && colors[idx] != "" {
		return colors[idx]
	}
	return DefaultColors[idx%len(DefaultColors)]
}
