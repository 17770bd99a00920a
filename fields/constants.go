package fields

import "math"

// Physical constants in SI units.
const (
	// SpeedOfLight is c, the vacuum speed of light (m/s).
	SpeedOfLight = 299792458.0
	// Mu0 is the vacuum permeability (H/m).
	Mu0 = 4e-7 * math.Pi
	// Eps0 is the vacuum permittivity (F/m), from mu0*eps0*c^2 = 1.
	Eps0 = 1.0 / (Mu0 * SpeedOfLight * SpeedOfLight)
)
