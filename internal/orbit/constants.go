package orbit

const (
	// AU is one astronomical unit in meters.
	AU = 149597870.7 * 1000
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11
	// Day is one day in seconds.
	Day = 24 * 3600.0

	// MinSeparation is the distance in meters below which a pair of bodies
	// is treated as coincident and skipped.
	MinSeparation = 1.0

	// DefaultTrailLength bounds the orbit trail of a body.
	DefaultTrailLength = 1000
)
