package analysis

import (
	"strings"

	"github.com/san-kum/accretion/internal/dynamo"
)

// SweepPoint holds the survivor counts sampled for one parameter value.
type SweepPoint struct {
	Param  float64
	Counts []int
}

// Sweep builds one engine per parameter value, lets it settle for transient
// ticks and then samples the live count every sampleEvery ticks for record
// ticks. A nil engine from build skips that value.
func Sweep(
	params []float64,
	build func(param float64) *dynamo.Engine,
	dt float64,
	transient, record, sampleEvery int,
) []SweepPoint {
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	results := make([]SweepPoint, 0, len(params))
	for _, p := range params {
		eng := build(p)
		if eng == nil {
			continue
		}

		for i := 0; i < transient; i++ {
			eng.Step(dt)
		}

		counts := make([]int, 0, record/sampleEvery+1)
		for i := 1; i <= record; i++ {
			eng.Step(dt)
			if i%sampleEvery == 0 {
				counts = append(counts, eng.Len())
			}
		}

		results = append(results, SweepPoint{Param: p, Counts: counts})
	}
	return results
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// SweepToASCII plots the sampled counts with the parameter on the x axis.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := 0, 0
	found := false
	for _, p := range data {
		for _, v := range p.Counts {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Counts {
			row := height - 1 - (v-minVal)*(height-1)/(maxVal-minVal)
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return render(canvas)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func render(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
