package fields

import (
	"fmt"
	"math"
)

// InterpolationGrid holds the fields and coordinates of the spatial (z, r)
// grid for one azimuthal mode. All field arrays are flat (Nz, Nr) row-major
// complex planes. The deposition subsystem writes Jr, Jt, Jz and Rho before
// the transform to spectral space; the particle pusher reads Er..Bz after the
// transform back.
type InterpolationGrid struct {
	M  int
	Nz int
	Nr int

	Z []float64
	R []float64

	Dz, Dr                 float64
	Zmin, Zmax, Rmin, Rmax float64

	// InvVol is the reciprocal cell volume per radial column: the cell is
	// the annulus of height dz between r-dr/2 and r+dr/2.
	InvVol []float64

	Er, Et, Ez []complex128
	Br, Bt, Bz []complex128
	Jr, Jt, Jz []complex128
	Rho        []complex128

	disp Dispatcher
}

// NewInterpolationGrid allocates the field planes of mode m on the given
// coordinate axes. Spacing and extents are fixed for the grid's lifetime.
func NewInterpolationGrid(z, r []float64, m int, disp Dispatcher) *InterpolationGrid {
	nz := len(z)
	nr := len(r)
	g := &InterpolationGrid{
		M:      m,
		Nz:     nz,
		Nr:     nr,
		Z:      append([]float64(nil), z...),
		R:      append([]float64(nil), r...),
		InvVol: make([]float64, nr),
		disp:   disp,
	}
	g.Dz = z[1] - z[0]
	g.Dr = r[1] - r[0]
	g.Zmin, g.Zmax = z[0], z[nz-1]
	g.Rmin, g.Rmax = r[0], r[nr-1]

	for j := 0; j < nr; j++ {
		rp := r[j] + 0.5*g.Dr
		rm := r[j] - 0.5*g.Dr
		g.InvVol[j] = 1.0 / (math.Pi * g.Dz * (rp*rp - rm*rm))
	}

	n := nz * nr
	g.Er = make([]complex128, n)
	g.Et = make([]complex128, n)
	g.Ez = make([]complex128, n)
	g.Br = make([]complex128, n)
	g.Bt = make([]complex128, n)
	g.Bz = make([]complex128, n)
	g.Jr = make([]complex128, n)
	g.Jt = make([]complex128, n)
	g.Jz = make([]complex128, n)
	g.Rho = make([]complex128, n)
	return g
}

// Erase zeroes the field group kind. Accepted kinds: E, B, J, Rho.
func (g *InterpolationGrid) Erase(kind FieldKind) error {
	switch kind {
	case KindRho:
		clear(g.Rho)
	case KindJ:
		clear(g.Jr)
		clear(g.Jt)
		clear(g.Jz)
	case KindE:
		clear(g.Er)
		clear(g.Et)
		clear(g.Ez)
	case KindB:
		clear(g.Br)
		clear(g.Bt)
		clear(g.Bz)
	default:
		return fmt.Errorf("%w: cannot erase %s on the interpolation grid", ErrInvalidFieldKind, kind)
	}
	return nil
}

// DivideByVolume converts the deposited extensive quantities of kind into
// densities by multiplying every radial column with InvVol. Accepted kinds:
// Rho, J.
func (g *InterpolationGrid) DivideByVolume(kind FieldKind) error {
	var planes [][]complex128
	switch kind {
	case KindRho:
		planes = [][]complex128{g.Rho}
	case KindJ:
		planes = [][]complex128{g.Jr, g.Jt, g.Jz}
	default:
		return fmt.Errorf("%w: cannot divide %s by cell volume", ErrInvalidFieldKind, kind)
	}
	nr := g.Nr
	for _, f := range planes {
		g.disp.Run(len(f), func(i int) {
			f[i] *= complex(g.InvVol[i%nr], 0)
		})
	}
	return nil
}

// Filter applies a three-point binomial smoothing stencil to the field group
// kind along the chosen axis. The z direction wraps periodically; the r
// direction uses a signed guard cell at the axis whose sign reflects the
// parity of each component under reflection through the axis for mode m:
// (-1)^m for longitudinal components, -(-1)^m for transverse ones. Accepted
// kinds: E, B, J, Rho.
func (g *InterpolationGrid) Filter(kind FieldKind, dir FilterDirection) error {
	longSign := 1.0
	if g.M%2 != 0 {
		longSign = -1.0
	}
	transSign := -longSign

	switch kind {
	case KindRho:
		g.binomialFilter(g.Rho, dir, longSign)
	case KindJ:
		g.binomialFilter(g.Jr, dir, transSign)
		g.binomialFilter(g.Jt, dir, transSign)
		g.binomialFilter(g.Jz, dir, longSign)
	case KindE:
		g.binomialFilter(g.Er, dir, transSign)
		g.binomialFilter(g.Et, dir, transSign)
		g.binomialFilter(g.Ez, dir, longSign)
	case KindB:
		g.binomialFilter(g.Br, dir, transSign)
		g.binomialFilter(g.Bt, dir, transSign)
		g.binomialFilter(g.Bz, dir, longSign)
	default:
		return fmt.Errorf("%w: cannot filter %s on the interpolation grid", ErrInvalidFieldKind, kind)
	}
	return nil
}

func (g *InterpolationGrid) binomialFilter(f []complex128, dir FilterDirection, signGuard float64) {
	nz, nr := g.Nz, g.Nr
	unfiltered := append([]complex128(nil), f...)
	sg := complex(signGuard, 0)

	switch dir {
	case FilterZ:
		// Periodic boundaries.
		g.disp.Run(nz, func(iz int) {
			prev := (iz - 1 + nz) % nz
			next := (iz + 1) % nz
			for ir := 0; ir < nr; ir++ {
				f[iz*nr+ir] = 0.25*unfiltered[prev*nr+ir] +
					0.5*unfiltered[iz*nr+ir] +
					0.25*unfiltered[next*nr+ir]
			}
		})
	case FilterR:
		// Non-periodic: signed guard cell below the axis, duplicated edge
		// value above the outer boundary.
		g.disp.Run(nz, func(iz int) {
			row := iz * nr
			for ir := 1; ir < nr-1; ir++ {
				f[row+ir] = 0.25*unfiltered[row+ir-1] +
					0.5*unfiltered[row+ir] +
					0.25*unfiltered[row+ir+1]
			}
			f[row] = 0.25*sg*unfiltered[row] +
				0.5*unfiltered[row] +
				0.5*unfiltered[row+1]
			f[row+nr-1] = 0.75*unfiltered[row+nr-1] + 0.25*unfiltered[row+nr-2]
		})
	}
}
