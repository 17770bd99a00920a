package fields

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SpectralGrid holds the fields of one azimuthal mode on the (kz, kr) grid.
// The transverse components are stored as the rotating p/m combinations
// p = (r - i*t)/2 and m = (r + i*t)/2, which live on the order m+1 and m-1
// radial bases respectively and diagonalize the transverse curl operator.
// All field arrays are flat (Nz, Nr) row-major complex planes.
type SpectralGrid struct {
	M  int
	Nz int
	Nr int

	Kz []float64
	Kr []float64

	Ep, Em, Ez []complex128
	Bp, Bm, Bz []complex128
	Jp, Jm, Jz []complex128
	RhoPrev    []complex128
	RhoNext    []complex128

	// invK2 is 1/(kz^2+kr^2) with the k=0 entry forced to zero: the DC mode
	// has no direction to correct along, so the current correction must not
	// touch it.
	invK2 []float64

	// filterArray holds the real, k-symmetric low-pass weights applied by
	// Filter.
	filterArray []float64

	// Pre-push snapshot of E: the B update needs the old E after the E
	// update has already overwritten it.
	oldEp, oldEm, oldEz []complex128

	disp Dispatcher
}

// NewSpectralGrid allocates the spectral field planes of mode m on the given
// wavenumber axes.
func NewSpectralGrid(kz, kr []float64, m int, disp Dispatcher) *SpectralGrid {
	nz := len(kz)
	nr := len(kr)
	n := nz * nr

	g := &SpectralGrid{
		M:           m,
		Nz:          nz,
		Nr:          nr,
		Kz:          append([]float64(nil), kz...),
		Kr:          append([]float64(nil), kr...),
		Ep:          make([]complex128, n),
		Em:          make([]complex128, n),
		Ez:          make([]complex128, n),
		Bp:          make([]complex128, n),
		Bm:          make([]complex128, n),
		Bz:          make([]complex128, n),
		Jp:          make([]complex128, n),
		Jm:          make([]complex128, n),
		Jz:          make([]complex128, n),
		RhoPrev:     make([]complex128, n),
		RhoNext:     make([]complex128, n),
		invK2:       make([]float64, n),
		filterArray: make([]float64, n),
		oldEp:       make([]complex128, n),
		oldEm:       make([]complex128, n),
		oldEz:       make([]complex128, n),
		disp:        disp,
	}

	for iz := 0; iz < nz; iz++ {
		for ir := 0; ir < nr; ir++ {
			i := iz*nr + ir
			if kz[iz] == 0 && kr[ir] == 0 {
				g.invK2[i] = 0
			} else {
				g.invK2[i] = 1.0 / (kz[iz]*kz[iz] + kr[ir]*kr[ir])
			}
		}
	}

	// Low-pass weights: 1 - sin^2(k/kmax * pi/2) per axis, taken as a
	// product. Equivalent to a one-pass binomial filter in real space along
	// z, and phase-free since the weights are real and even in k.
	coefZ := 0.5 * math.Pi / floats.Max(kz)
	coefR := 0.5 * math.Pi / floats.Max(kr)
	for iz := 0; iz < nz; iz++ {
		sz := math.Sin(kz[iz] * coefZ)
		fz := 1.0 - sz*sz
		for ir := 0; ir < nr; ir++ {
			sr := math.Sin(kr[ir] * coefR)
			g.filterArray[iz*nr+ir] = fz * (1.0 - sr*sr)
		}
	}
	return g
}

// CorrectCurrents adjusts Jp, Jm, Jz so that the deposited currents satisfy
// the discrete continuity equation d(rho)/dt + div J = 0 exactly:
//
//	F  = -1/k^2 * [ (rho_next - rho_prev)/dt + i*kz*Jz + kr*(Jp - Jm) ]
//	Jp += kr*F/2 ; Jm -= kr*F/2 ; Jz -= i*kz*F
//
// The k=0 component is left untouched (invK2 is zero there).
func (g *SpectralGrid) CorrectCurrents(dt float64) {
	invDt := complex(1.0/dt, 0)
	nr := g.Nr
	g.disp.Run(len(g.Jz), func(i int) {
		kz := complex(g.Kz[i/nr], 0)
		kr := complex(g.Kr[i%nr], 0)
		div := 1i*kz*g.Jz[i] + kr*(g.Jp[i]-g.Jm[i])
		f := -complex(g.invK2[i], 0) * ((g.RhoNext[i]-g.RhoPrev[i])*invDt + div)
		g.Jp[i] += 0.5 * kr * f
		g.Jm[i] -= 0.5 * kr * f
		g.Jz[i] -= 1i * kz * f
	})
}

// PushEB advances E and B over one timestep using the PSATD coefficients ps.
// With ptclFeedback false only the homogeneous vacuum propagator acts. With
// ptclFeedback true the deposited currents drive the fields, and the charge
// term is taken either from the deposited densities (useTrueRho) or
// reconstructed from div(E) and div(J), which lets a simulation run without
// an explicit neutralizing background charge.
func (g *SpectralGrid) PushEB(ps *PsatdCoeffs, ptclFeedback, useTrueRho bool) error {
	if ps.m != g.M {
		return fmt.Errorf("%w: grid mode %d, coefficients mode %d", ErrModeMismatch, g.M, ps.m)
	}

	copy(g.oldEp, g.Ep)
	copy(g.oldEm, g.Em)
	copy(g.oldEz, g.Ez)

	const c2 = complex(SpeedOfLight*SpeedOfLight, 0)
	const mu0 = complex(Mu0, 0)
	nr := g.Nr

	if !ptclFeedback {
		g.disp.Run(len(g.Ez), func(i int) {
			kz := complex(g.Kz[i/nr], 0)
			kr := complex(g.Kr[i%nr], 0)
			C := complex(ps.C[i], 0)
			Sw := complex(ps.Sw[i], 0)

			g.Ep[i] = C*g.Ep[i] + c2*Sw*(-1i*0.5*kr*g.Bz[i]+kz*g.Bp[i])
			g.Em[i] = C*g.Em[i] + c2*Sw*(-1i*0.5*kr*g.Bz[i]-kz*g.Bm[i])
			g.Ez[i] = C*g.Ez[i] + c2*Sw*(1i*kr*g.Bp[i]+1i*kr*g.Bm[i])

			g.Bp[i] = C*g.Bp[i] - Sw*(-1i*0.5*kr*g.oldEz[i]+kz*g.oldEp[i])
			g.Bm[i] = C*g.Bm[i] - Sw*(-1i*0.5*kr*g.oldEz[i]-kz*g.oldEm[i])
			g.Bz[i] = C*g.Bz[i] - Sw*(1i*kr*g.oldEp[i]+1i*kr*g.oldEm[i])
		})
		return nil
	}

	dt := complex(ps.dt, 0)
	g.disp.Run(len(g.Ez), func(i int) {
		kz := complex(g.Kz[i/nr], 0)
		kr := complex(g.Kr[i%nr], 0)
		C := complex(ps.C[i], 0)
		Sw := complex(ps.Sw[i], 0)
		jc := complex(ps.JCoef[i], 0)
		rpc := complex(ps.RhoPrevCoef[i], 0)
		rnc := complex(ps.RhoNextCoef[i], 0)

		var rhoDiff complex128
		if useTrueRho {
			rhoDiff = rnc*g.RhoNext[i] - rpc*g.RhoPrev[i]
		} else {
			divE := kr*(g.Ep[i]-g.Em[i]) + 1i*kz*g.Ez[i]
			divJ := kr*(g.Jp[i]-g.Jm[i]) + 1i*kz*g.Jz[i]
			rhoDiff = (rnc-rpc)*complex(Eps0, 0)*divE - rnc*dt*divJ
		}

		g.Ep[i] = C*g.Ep[i] + 0.5*kr*rhoDiff +
			c2*Sw*(-1i*0.5*kr*g.Bz[i]+kz*g.Bp[i]-mu0*g.Jp[i])
		g.Em[i] = C*g.Em[i] - 0.5*kr*rhoDiff +
			c2*Sw*(-1i*0.5*kr*g.Bz[i]-kz*g.Bm[i]-mu0*g.Jm[i])
		g.Ez[i] = C*g.Ez[i] - 1i*kz*rhoDiff +
			c2*Sw*(1i*kr*g.Bp[i]+1i*kr*g.Bm[i]-mu0*g.Jz[i])

		g.Bp[i] = C*g.Bp[i] - Sw*(-1i*0.5*kr*g.oldEz[i]+kz*g.oldEp[i]) +
			jc*(-1i*0.5*kr*g.Jz[i]+kz*g.Jp[i])
		g.Bm[i] = C*g.Bm[i] - Sw*(-1i*0.5*kr*g.oldEz[i]-kz*g.oldEm[i]) +
			jc*(-1i*0.5*kr*g.Jz[i]-kz*g.Jm[i])
		g.Bz[i] = C*g.Bz[i] - Sw*(1i*kr*g.oldEp[i]+1i*kr*g.oldEm[i]) +
			jc*(1i*kr*g.Jp[i]+1i*kr*g.Jm[i])
	})
	return nil
}

// PushRho shifts the charge history window: rho_prev takes the value of
// rho_next, and rho_next is zeroed for the next deposition cycle. It must
// run after the push that consumed both densities.
func (g *SpectralGrid) PushRho() {
	copy(g.RhoPrev, g.RhoNext)
	clear(g.RhoNext)
}

// Filter multiplies the field group kind by the precomputed low-pass
// weights. Accepted kinds: E, B, J, RhoNext, RhoPrev.
func (g *SpectralGrid) Filter(kind FieldKind) error {
	var planes [][]complex128
	switch kind {
	case KindRhoPrev:
		planes = [][]complex128{g.RhoPrev}
	case KindRhoNext:
		planes = [][]complex128{g.RhoNext}
	case KindJ:
		planes = [][]complex128{g.Jp, g.Jm, g.Jz}
	case KindE:
		planes = [][]complex128{g.Ep, g.Em, g.Ez}
	case KindB:
		planes = [][]complex128{g.Bp, g.Bm, g.Bz}
	default:
		return fmt.Errorf("%w: cannot filter %s on the spectral grid", ErrInvalidFieldKind, kind)
	}
	for _, f := range planes {
		g.disp.Run(len(f), func(i int) {
			f[i] *= complex(g.filterArray[i], 0)
		})
	}
	return nil
}
