package viz

// RenderWalk draws the x-y path of a walk on a braille canvas, scaled to
// its own bounding box. It accepts plain coordinate slices so callers can
// pass either a full trajectory or a live trail.
func RenderWalk(xs, ys []float64, width, height int) string {
	c := NewCanvas(width, height)
	if len(xs) == 0 || len(xs) != len(ys) {
		return c.String()
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
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

	pw := float64(width*2 - 1)
	ph := float64(height*4 - 1)
	toPixel := func(x, y float64) (int, int) {
		px := int((x - minX) / rangeX * pw)
		// y grows upward on paper, downward on the canvas
		py := int((maxY - y) / rangeY * ph)
		return px, py
	}

	prevX, prevY := toPixel(xs[0], ys[0])
	c.Set(prevX, prevY)
	for i := 1; i < len(xs); i++ {
		px, py := toPixel(xs[i], ys[i])
		c.DrawLine(prevX, prevY, px, py)
		prevX, prevY = px, py
	}
	return c.String()
}
