package analysis

import (
	"math"

	"github.com/san-kum/accretion/internal/dynamo"
)

type Point struct{ X, Y float64 }

// OrbitPortrait returns the positions of body id relative to the anchor,
// one point per frame it appears in alongside the anchor.
func OrbitPortrait(frames []dynamo.Frame, id int) []Point {
	points := make([]Point, 0, len(frames))
	for _, f := range frames {
		anchor, body, ok := locate(f, id)
		if !ok {
			continue
		}
		points = append(points, Point{X: body.X - anchor.X, Y: body.Y - anchor.Y})
	}
	return points
}

// PortraitToASCII plots points in a width×height character grid with equal
// padding on every side. The anchor sits at the origin and is marked when
// it falls inside the plot.
func PortraitToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
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

	canvas := blankCanvas(width, height)
	cell := func(x, y float64) (int, int, bool) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	for _, p := range points {
		if row, col, ok := cell(p.X, p.Y); ok {
			canvas[row][col] = '•'
		}
	}
	if row, col, ok := cell(0, 0); ok {
		canvas[row][col] = '@'
	}

	return render(canvas)
}
