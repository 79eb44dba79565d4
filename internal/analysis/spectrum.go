package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
)

// RadialSeries returns the distance of body id from the anchor in every
// frame, stopping at the first frame the body is absent from.
func RadialSeries(frames []dynamo.Frame, id int) []float64 {
	series := make([]float64, 0, len(frames))
	for _, f := range frames {
		anchor, body, ok := locate(f, id)
		if !ok {
			break
		}
		series = append(series, math.Hypot(body.X-anchor.X, body.Y-anchor.Y))
	}
	return series
}

func locate(f dynamo.Frame, id int) (anchor, body dynamo.BodyState, ok bool) {
	var foundAnchor, foundBody bool
	for _, b := range f.Bodies {
		if b.Category == physics.Anchor {
			anchor, foundAnchor = b, true
		}
		if b.ID == id {
			body, foundBody = b, true
		}
	}
	return anchor, body, foundAnchor && foundBody
}

// PowerSpectrum returns |X_k|^2 for k = 0..n/2 of the mean-removed series.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(coeffs[i])
		ps[i] = a * a
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-DC spectral bin.
// sampleDt is the simulation time between consecutive samples.
func DominantPeriod(series []float64, sampleDt float64) (float64, bool) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || sampleDt <= 0 {
		return 0, false
	}

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, false
	}
	return float64(len(series)) * sampleDt / float64(peak), true
}

// Extent returns the minimum and maximum of series.
func Extent(series []float64) (lo, hi float64) {
	if len(series) == 0 {
		return 0, 0
	}
	lo, hi = series[0], series[0]
	for _, v := range series[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Apsides returns the sample indices of local minima (periapsis) and
// maxima (apoapsis) of a radial series.
func Apsides(series []float64) (peri, apo []int) {
	for i := 1; i < len(series)-1; i++ {
		prev, cur, next := series[i-1], series[i], series[i+1]
		switch {
		case cur < prev && cur <= next:
			peri = append(peri, i)
		case cur > prev && cur >= next:
			apo = append(apo, i)
		}
	}
	return peri, apo
}
