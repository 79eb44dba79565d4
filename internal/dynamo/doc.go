// Package dynamo provides the step engine and run driver for the anchored
// N-body simulation.
//
//   - [Engine]: owns the live body set; [Engine.Step] advances one tick
//   - [Integrator]: the kick/drift scheme applied after merging
//   - [Simulator]: runs an engine for many ticks with metrics and observers
//   - [StepResult]: per-tick report of live bodies and destroyed ids
//
// A tick performs merge detection first, then hands the surviving bodies to
// the integrator, which recomputes accelerations through the supplied
// [ForceField].
//
// # Example
//
//	bodies, _ := physics.Initialize(1000, 1000, physics.DefaultOrbitConfig(), rng)
//	eng := dynamo.NewEngine(bodies, 1, integrators.NewLeapfrog())
//	res := eng.Step(dynamo.DefaultDt)
//	for _, id := range res.Destroyed {
//	    // retire the visual for id
//	}
//
// # Thread Safety
//
// Engine and Simulator instances are NOT thread-safe and a Step must finish
// before the next begins. For independent runs in parallel, use one engine
// per goroutine (see experiment.Ensemble).
package dynamo
