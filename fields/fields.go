package fields

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Fields owns the complete electromagnetic state of a cylindrical simulation:
// one interpolation grid, one spectral grid, one transformer and one set of
// PSATD coefficients per azimuthal mode. All cross-representation and
// time-advance operations go through this type; the per-mode pieces are
// exported for deposition and gathering code but their geometry is fixed at
// construction.
type Fields struct {
	Nz, Nr, Nm int
	Dt         float64

	// UseTrueRho selects the charge term of the E push: the deposited
	// densities when true, a div(E)/div(J) reconstruction when false.
	// The reconstruction is the safer default when the simulated plasma
	// has no explicit neutralizing background.
	UseTrueRho bool

	Interp []*InterpolationGrid
	Spect  []*SpectralGrid
	Trans  []*SpectralTransformer
	Psatd  []*PsatdCoeffs

	disp Dispatcher
}

// New builds the field state for Nm azimuthal modes on an Nz x Nr grid
// spanning [0, zmax) x (0, rmax). Nz is rounded to the nearest odd number so
// the kz grid is symmetric and the z-axis low-pass filter is strictly real.
func New(Nz int, zmax float64, Nr int, rmax float64, Nm int, dt float64, backend Backend) (*Fields, error) {
	if Nz < 3 || Nr < 2 {
		return nil, errors.New("grid must have at least 3 longitudinal and 2 radial cells")
	}
	if Nm < 1 {
		return nil, errors.New("at least one azimuthal mode is required")
	}
	if zmax <= 0 || rmax <= 0 {
		return nil, errors.New("zmax and rmax must be positive")
	}
	if dt <= 0 {
		return nil, errors.New("timestep must be positive")
	}

	Nz = 2*(Nz/2) + 1

	f := &Fields{
		Nz:     Nz,
		Nr:     Nr,
		Nm:     Nm,
		Dt:     dt,
		Interp: make([]*InterpolationGrid, Nm),
		Spect:  make([]*SpectralGrid, Nm),
		Trans:  make([]*SpectralTransformer, Nm),
		Psatd:  make([]*PsatdCoeffs, Nm),
		disp:   newDispatcher(backend),
	}

	dz := zmax / float64(Nz)
	z := make([]float64, Nz)
	for j := 0; j < Nz; j++ {
		z[j] = dz * (float64(j) + 0.5)
	}
	kz := waveNumbers(Nz, dz)

	for m := 0; m < Nm; m++ {
		t, err := NewSpectralTransformer(Nz, Nr, m, rmax)
		if err != nil {
			return nil, fmt.Errorf("mode %d transformer: %w", m, err)
		}
		f.Trans[m] = t
		f.Interp[m] = NewInterpolationGrid(z, t.R(), m, f.disp)
		f.Spect[m] = NewSpectralGrid(kz, t.Kr(), m, f.disp)
		f.Psatd[m] = NewPsatdCoeffs(kz, t.Kr(), m, dt)
	}
	return f, nil
}

// waveNumbers returns the angular wavenumbers 2*pi*f of an n-point DFT with
// sample spacing d, in the standard FFT output order: non-negative
// frequencies first, then the negative ones.
func waveNumbers(n int, d float64) []float64 {
	k := make([]float64, n)
	scale := 2 * math.Pi / (float64(n) * d)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		k[i] = scale * float64(i)
	}
	for i := half; i < n; i++ {
		k[i] = scale * float64(i-n)
	}
	return k
}

// Push advances E and B over one timestep on every mode and rotates the
// charge-density history window. With ptclFeedback false the fields propagate
// in vacuum; deposited currents and densities are ignored.
func (f *Fields) Push(ptclFeedback bool) error {
	var eg errgroup.Group
	for m := 0; m < f.Nm; m++ {
		m := m
		eg.Go(func() error {
			if err := f.Spect[m].PushEB(f.Psatd[m], ptclFeedback, f.UseTrueRho); err != nil {
				return fmt.Errorf("mode %d: %w", m, err)
			}
			f.Spect[m].PushRho()
			return nil
		})
	}
	return eg.Wait()
}

// CorrectCurrents adjusts the spectral currents of every mode so they satisfy
// the discrete continuity equation with the deposited charge densities. It
// must run after Interp2Spect of J and rho_next and before Push. The per-mode
// correction cannot fail, so unlike Push there is no error to collect.
func (f *Fields) CorrectCurrents() {
	var wg sync.WaitGroup
	for m := 0; m < f.Nm; m++ {
		m := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Spect[m].CorrectCurrents(f.Dt)
		}()
	}
	wg.Wait()
}

// Interp2Spect transforms the field group kind of every mode from the
// interpolation grid to the spectral grid. The deposited density always lands
// in rho_next; KindRhoNext and KindRhoPrev name the spectral destination and
// both read Rho on the interpolation grid.
func (f *Fields) Interp2Spect(kind FieldKind) error {
	var eg errgroup.Group
	for m := 0; m < f.Nm; m++ {
		m := m
		eg.Go(func() error {
			ip, sp, tr := f.Interp[m], f.Spect[m], f.Trans[m]
			switch kind {
			case KindE:
				tr.Interp2SpectVect(ip.Er, ip.Et, sp.Ep, sp.Em)
				tr.Interp2SpectScal(ip.Ez, sp.Ez)
			case KindB:
				tr.Interp2SpectVect(ip.Br, ip.Bt, sp.Bp, sp.Bm)
				tr.Interp2SpectScal(ip.Bz, sp.Bz)
			case KindJ:
				tr.Interp2SpectVect(ip.Jr, ip.Jt, sp.Jp, sp.Jm)
				tr.Interp2SpectScal(ip.Jz, sp.Jz)
			case KindRhoNext:
				tr.Interp2SpectScal(ip.Rho, sp.RhoNext)
			case KindRhoPrev:
				tr.Interp2SpectScal(ip.Rho, sp.RhoPrev)
			default:
				return fmt.Errorf("%w: cannot transform %s to the spectral grid", ErrInvalidFieldKind, kind)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Spect2Interp transforms the field group kind of every mode from the
// spectral grid back to the interpolation grid. KindRho reads the spectral
// rho_next, which holds the most recently deposited density.
func (f *Fields) Spect2Interp(kind FieldKind) error {
	var eg errgroup.Group
	for m := 0; m < f.Nm; m++ {
		m := m
		eg.Go(func() error {
			ip, sp, tr := f.Interp[m], f.Spect[m], f.Trans[m]
			switch kind {
			case KindE:
				tr.Spect2InterpVect(sp.Ep, sp.Em, ip.Er, ip.Et)
				tr.Spect2InterpScal(sp.Ez, ip.Ez)
			case KindB:
				tr.Spect2InterpVect(sp.Bp, sp.Bm, ip.Br, ip.Bt)
				tr.Spect2InterpScal(sp.Bz, ip.Bz)
			case KindJ:
				tr.Spect2InterpVect(sp.Jp, sp.Jm, ip.Jr, ip.Jt)
				tr.Spect2InterpScal(sp.Jz, ip.Jz)
			case KindRho:
				tr.Spect2InterpScal(sp.RhoNext, ip.Rho)
			default:
				return fmt.Errorf("%w: cannot transform %s to the interpolation grid", ErrInvalidFieldKind, kind)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Erase zeroes the field group kind on the interpolation grid of every mode.
func (f *Fields) Erase(kind FieldKind) error {
	for m := 0; m < f.Nm; m++ {
		if err := f.Interp[m].Erase(kind); err != nil {
			return err
		}
	}
	return nil
}

// DivideByVolume converts the deposited charge or current of every mode into
// densities.
func (f *Fields) DivideByVolume(kind FieldKind) error {
	for m := 0; m < f.Nm; m++ {
		if err := f.Interp[m].DivideByVolume(kind); err != nil {
			return err
		}
	}
	return nil
}

// FilterInterp applies the binomial smoothing stencil along dir to the field
// group kind on the interpolation grid of every mode.
func (f *Fields) FilterInterp(kind FieldKind, dir FilterDirection) error {
	for m := 0; m < f.Nm; m++ {
		if err := f.Interp[m].Filter(kind, dir); err != nil {
			return err
		}
	}
	return nil
}

// FilterSpect applies the spectral low-pass weights to the field group kind
// of every mode.
func (f *Fields) FilterSpect(kind FieldKind) error {
	for m := 0; m < f.Nm; m++ {
		if err := f.Spect[m].Filter(kind); err != nil {
			return err
		}
	}
	return nil
}
