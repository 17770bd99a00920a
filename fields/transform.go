package fields

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectralTransformer converts fields of one azimuthal mode back and forth
// between the interpolation and spectral grids: an FFT along z followed by
// the order-m radial basis operator for scalars, and the order m+1 / m-1
// operators for the rotating p/m transverse pair.
//
// The transformer owns its scratch planes and reuses them across calls, so a
// single instance must not be used concurrently. Transformers of different
// modes have disjoint scratch and are safe to run in parallel.
type SpectralTransformer struct {
	nz, nr int

	fft *fourier.CmplxFFT

	basis0 *RadialBasis // order m, scalar fields
	basisP *RadialBasis // order m+1, p component
	basisM *RadialBasis // order m-1, m component

	// Scratch planes. The r/t <-> p/m mixing reads both of its inputs in
	// full before either output is written, so none of these may alias a
	// caller array.
	line           []complex128
	planeR, planeT []complex128
	planeP, planeM []complex128
}

// NewSpectralTransformer prepares the FFT plan and the three radial basis
// operators of mode m.
func NewSpectralTransformer(Nz, Nr, m int, rmax float64) (*SpectralTransformer, error) {
	t := &SpectralTransformer{
		nz:     Nz,
		nr:     Nr,
		fft:    fourier.NewCmplxFFT(Nz),
		line:   make([]complex128, Nz),
		planeR: make([]complex128, Nz*Nr),
		planeT: make([]complex128, Nz*Nr),
		planeP: make([]complex128, Nz*Nr),
		planeM: make([]complex128, Nz*Nr),
	}

	var err error
	if t.basis0, err = NewRadialBasis(m, m, Nz, Nr, rmax); err != nil {
		return nil, fmt.Errorf("mode %d scalar basis: %w", m, err)
	}
	if t.basisP, err = NewRadialBasis(m+1, m, Nz, Nr, rmax); err != nil {
		return nil, fmt.Errorf("mode %d p basis: %w", m, err)
	}
	if t.basisM, err = NewRadialBasis(m-1, m, Nz, Nr, rmax); err != nil {
		return nil, fmt.Errorf("mode %d m basis: %w", m, err)
	}
	return t, nil
}

// R returns the radial collocation points of the mode.
func (t *SpectralTransformer) R() []float64 { return t.basis0.R() }

// Kr returns the radial wavenumbers of the mode.
func (t *SpectralTransformer) Kr() []float64 { return t.basis0.Kr() }

// forwardZ FFTs every radial column of src along z into dst.
func (t *SpectralTransformer) forwardZ(src, dst []complex128) {
	nz, nr := t.nz, t.nr
	for ir := 0; ir < nr; ir++ {
		for iz := 0; iz < nz; iz++ {
			t.line[iz] = src[iz*nr+ir]
		}
		t.fft.Coefficients(t.line, t.line)
		for iz := 0; iz < nz; iz++ {
			dst[iz*nr+ir] = t.line[iz]
		}
	}
}

// inverseZ inverse-FFTs every radial column of src along z into dst. Gonum
// transforms are unnormalized, so the inverse is scaled by 1/Nz.
func (t *SpectralTransformer) inverseZ(src, dst []complex128) {
	nz, nr := t.nz, t.nr
	scale := complex(1.0/float64(nz), 0)
	for ir := 0; ir < nr; ir++ {
		for iz := 0; iz < nz; iz++ {
			t.line[iz] = src[iz*nr+ir]
		}
		t.fft.Sequence(t.line, t.line)
		for iz := 0; iz < nz; iz++ {
			dst[iz*nr+ir] = t.line[iz] * scale
		}
	}
}

// Interp2SpectScal converts a scalar field from the interpolation grid to
// the spectral grid. Both arrays are flat (Nz, Nr) planes; spect is
// overwritten.
func (t *SpectralTransformer) Interp2SpectScal(interp, spect []complex128) {
	t.forwardZ(interp, t.planeR)
	t.basis0.Transform(t.planeR, spect)
}

// Spect2InterpScal converts a scalar field from the spectral grid back to
// the interpolation grid; interp is overwritten.
func (t *SpectralTransformer) Spect2InterpScal(spect, interp []complex128) {
	t.basis0.InverseTransform(spect, t.planeR)
	t.inverseZ(t.planeR, interp)
}

// Interp2SpectVect converts the transverse (r, t) pair from the
// interpolation grid to the rotating (p, m) pair on the spectral grid:
// p = (r - i*t)/2 on the order m+1 basis, m = (r + i*t)/2 on order m-1.
func (t *SpectralTransformer) Interp2SpectVect(interpR, interpT, spectP, spectM []complex128) {
	t.forwardZ(interpR, t.planeR)
	t.forwardZ(interpT, t.planeT)
	for i := range t.planeP {
		t.planeP[i] = 0.5 * (t.planeR[i] - 1i*t.planeT[i])
		t.planeM[i] = 0.5 * (t.planeR[i] + 1i*t.planeT[i])
	}
	t.basisP.Transform(t.planeP, spectP)
	t.basisM.Transform(t.planeM, spectM)
}

// Spect2InterpVect converts the rotating (p, m) pair back to the transverse
// (r, t) pair on the interpolation grid: r = p + m, t = i*(p - m).
func (t *SpectralTransformer) Spect2InterpVect(spectP, spectM, interpR, interpT []complex128) {
	t.basisP.InverseTransform(spectP, t.planeP)
	t.basisM.InverseTransform(spectM, t.planeM)
	for i := range t.planeR {
		t.planeR[i] = t.planeP[i] + t.planeM[i]
		t.planeT[i] = 1i * (t.planeP[i] - t.planeM[i])
	}
	t.inverseZ(t.planeR, interpR)
	t.inverseZ(t.planeT, interpT)
}
