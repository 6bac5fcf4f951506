package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/brownsim/internal/trajectory"
)

// WalkSVG renders the x-y path of a trajectory as an SVG polyline, scaled
// to its bounding box with a 10% margin.
func WalkSVG(tr *trajectory.Trajectory, width, height int, strokeColor string) string {
	if tr == nil || tr.Len() < 2 {
		return ""
	}
	if strokeColor == "" {
		strokeColor = "#00ccff"
	}

	minX, maxX := tr.X[0], tr.X[0]
	minY, maxY := tr.Y[0], tr.Y[0]
	for i := 0; i < tr.Len(); i++ {
		if tr.X[i] < minX {
			minX = tr.X[i]
		}
		if tr.X[i] > maxX {
			maxX = tr.X[i]
		}
		if tr.Y[i] < minY {
			minY = tr.Y[i]
		}
		if tr.Y[i] > maxY {
			maxY = tr.Y[i]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="%s" stroke-width="1" points="`,
		width, height, width, height, strokeColor))

	for i := 0; i < tr.Len(); i++ {
		px := (tr.X[i] - minX) / rangeX * float64(width)
		py := (maxY - tr.Y[i]) / rangeY * float64(height)
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", px, py))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
