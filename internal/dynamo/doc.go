// Package dynamo provides the simulation core for the holographic force lab.
//
// The package defines the state and record types shared by every other
// package, and the fixed-step loop that advances a point mass under a
// position dependent force:
//
//   - [Vec3]: three component vector value type
//   - [State]: position, velocity, time and step counter of the mass
//   - [ForceModel]: interface producing a force and a field sample
//   - [Integrator]: advances velocity and position by one step
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	model := force.Default()
//	integ := integrators.NewSemiImplicitEuler()
//	sim := dynamo.New(model, integ)
//	result, _ := sim.Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. A [Run] must be driven from a
// single goroutine.
package dynamo
