// Package analysis post-processes recorded runs.
//
//   - [RadialSeries]: distance of one body from the anchor per frame
//   - [PowerSpectrum] and [DominantPeriod]: orbital period from a radial series
//   - [Apsides]: periapsis and apoapsis passages of a radial series
//   - [Divergence]: growth of a small perturbation between two engines
//   - [Sweep]: survivor counts across a range of one launch parameter
//
// # Orbital period
//
// A bound orbiter oscillates in distance once per revolution, so the peak
// of the spectrum of its radial series gives the period:
//
//	series := analysis.RadialSeries(frames, id)
//	period, ok := analysis.DominantPeriod(series, sampleDt)
package analysis
