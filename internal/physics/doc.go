// Package physics provides the body model and gravitational law for the
// anchored N-body simulation.
//
//   - [Body]: one point mass with identity, mass, contact radius and kinematics
//   - [Acceleration]: pairwise Newtonian acceleration, zero on coincidence
//   - [Accelerate]: full pairwise acceleration recompute over a body set
//   - [Initialize]: builds the anchor body and its perturbed orbiters
//
// Energy, momentum and mass diagnostics ([TotalEnergy], [Momentum],
// [TotalMass]) are used by the metrics package to check conservation.
//
// # Determinism
//
// [Initialize] draws from the supplied *rand.Rand in a fixed order: the
// anchor consumes nothing, then each orbiter in id order draws its angle,
// distance and velocity deviation. The same seed always yields the same
// bodies.
//
//	rng := rand.New(rand.NewSource(42))
//	bodies, err := physics.Initialize(1000, 1000, physics.DefaultOrbitConfig(), rng)
package physics
