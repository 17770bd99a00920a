package fields

import "math"

// PsatdCoeffs holds, for one azimuthal mode, the closed-form coefficients of
// the exact vacuum-Maxwell propagator and its source terms, sampled on every
// (kz, kr) point of the spectral grid. They are pure functions of the mesh,
// the mode and the timestep: nothing mutates them after construction, and
// they must be rebuilt if dt or the grid geometry changes.
//
// All arrays are flat (Nz, Nr) row-major, matching the spectral grid layout.
type PsatdCoeffs struct {
	m  int
	dt float64

	// C = cos(w*dt) and Sw = sin(w*dt)/w with w = c*|k|.
	C  []float64
	Sw []float64
	// JCoef multiplies curl(J) in the B push: mu0*c^2*(1-C)/w^2.
	JCoef []float64
	// RhoPrevCoef and RhoNextCoef weight the deposited charge densities in
	// the E push: (c^2/eps0)*(C - Sw/dt)/w^2 and (c^2/eps0)*(1 - Sw/dt)/w^2.
	RhoPrevCoef []float64
	RhoNextCoef []float64
}

// NewPsatdCoeffs tabulates the propagator coefficients on the (kz, kr) mesh
// of mode m for timestep dt. The w -> 0 point is handled by the analytic
// Taylor limits of each coefficient, never by evaluating 0/0.
func NewPsatdCoeffs(kz, kr []float64, m int, dt float64) *PsatdCoeffs {
	nz := len(kz)
	nr := len(kr)
	n := nz * nr

	ps := &PsatdCoeffs{
		m:           m,
		dt:          dt,
		C:           make([]float64, n),
		Sw:          make([]float64, n),
		JCoef:       make([]float64, n),
		RhoPrevCoef: make([]float64, n),
		RhoNextCoef: make([]float64, n),
	}

	c2 := SpeedOfLight * SpeedOfLight
	invDt := 1.0 / dt
	for iz := 0; iz < nz; iz++ {
		for ir := 0; ir < nr; ir++ {
			i := iz*nr + ir
			w := SpeedOfLight * math.Hypot(kz[iz], kr[ir])
			if w == 0 {
				// Taylor limits as w -> 0.
				ps.C[i] = 1.0
				ps.Sw[i] = dt
				ps.JCoef[i] = Mu0 * c2 * 0.5 * dt * dt
				ps.RhoPrevCoef[i] = -c2 / Eps0 * dt * dt / 3.0
				ps.RhoNextCoef[i] = c2 / Eps0 * dt * dt / 6.0
				continue
			}
			invW2 := 1.0 / (w * w)
			C := math.Cos(w * dt)
			Sw := math.Sin(w*dt) / w
			ps.C[i] = C
			ps.Sw[i] = Sw
			ps.JCoef[i] = Mu0 * c2 * (1.0 - C) * invW2
			ps.RhoPrevCoef[i] = c2 / Eps0 * (C - invDt*Sw) * invW2
			ps.RhoNextCoef[i] = c2 / Eps0 * (1.0 - invDt*Sw) * invW2
		}
	}
	return ps
}

// Mode returns the azimuthal mode index the coefficients were built for.
func (ps *PsatdCoeffs) Mode() int { return ps.m }

// Dt returns the timestep the coefficients were built for.
func (ps *PsatdCoeffs) Dt() float64 { return ps.dt }
