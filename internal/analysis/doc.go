// Package analysis characterizes recorded orbits.
//
//   - [DominantPeriod]: strongest periodic component of a series via FFT
//   - [Crossings] and [CrossingPeriod]: period from upward x-axis crossings
//   - [LyapunovExponent]: sensitivity of a system to a small displacement
//   - [TracksToASCII]: terminal plot of one or more orbit tracks
//
// The spectrum needs several cycles in the window. Crossings need the
// orbit to enclose the sun.
//
//	period, err := analysis.DominantPeriod(distances, sampleDt)
//	years := period / (365.25 * orbit.Day)
package analysis
