// Package physics provides the particle field simulated behind the backdrop.
//
// The package is split into the pieces the frame loop touches each tick:
//
//   - [Pool]: fixed-size, index-stable particle collection seeded once from the viewport
//   - [Pointer]: last pointer coordinate and the repulsion field around it
//   - [Viewport]: drawable surface dimensions, updated by resize signals
//   - [Integrator]: per-frame velocity/position update with damping and wraparound
//   - [Scene]: the context object tying the above together for one mount
//
// # Example
//
//	vp := physics.NewViewport(1280, 720)
//	scene := physics.NewScene(vp, physics.DefaultSeedParams(), physics.DefaultPointerParams(), rng)
//	integ := physics.DefaultIntegrator()
//	integ.Step(scene.Pool, scene.Pointer, vp)
//
// # Thread Safety
//
// [Pointer] and [Viewport] may be updated from input handlers on any goroutine.
// [Pool] is NOT thread-safe and must only be touched by the goroutine running frames.
package physics
