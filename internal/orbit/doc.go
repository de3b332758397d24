// Package orbit holds the physical model of the simulation.
//
// A [System] owns an ordered set of [Body] values and advances them with
// explicit Euler steps:
//
//   - [Body.Acceleration]: Newtonian pull from every other body
//   - [Body.Integrate]: v += a*dt, then p += v*dt (positions kept in AU)
//   - [System.Step]: two-phase update from one snapshot of positions
//
// # Units
//
// Positions are astronomical units, velocities meters per second, masses
// kilograms and time seconds. Forces are evaluated in meters.
//
// # Gravity modes
//
// [Pairwise] attracts every body toward every other one. [SunOnly] lets a
// planet feel bodies flagged IsSun only, which is the fixed-center
// approximation.
package orbit
