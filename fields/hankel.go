package fields

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RadialBasis is the discrete quasi-Hankel transform of Bessel order p,
// acting along the radial axis of an (Nz, Nr) complex field plane. The mode
// index m fixes the collocation grids: radial points sit at cell centers
// r_j = (j+1/2)*rmax/Nr and the spectral points are kr_n = j_{m,n+1}/rmax,
// where j_{m,n} is the n-th positive zero of J_m. All three operators of a
// mode (orders m, m+1, m-1) share that order-m spectral grid, so the
// transverse p/m components land on the same (kz, kr) mesh as the scalars.
//
// The synthesis matrix tabulates J_p(kr_n * r_j); the analysis matrix is its
// pseudo-inverse, which makes a transform/inverse-transform round trip exact
// to factorization precision.
type RadialBasis struct {
	order int
	nz    int
	nr    int

	r  []float64 // radial collocation points
	kr []float64 // spectral collocation points

	synth *mat.Dense // Nr x Nr, spectral -> radial
	anal  *mat.Dense // Nr x Nr, radial -> spectral

	// Scratch planes for applying a real matrix to a complex field.
	// Owned by this operator; callers on different modes never share one.
	inRe, inIm   *mat.Dense
	outRe, outIm *mat.Dense
}

// NewRadialBasis builds the order-p operator on the grids of mode m.
func NewRadialBasis(p, m, Nz, Nr int, rmax float64) (*RadialBasis, error) {
	if Nz <= 0 || Nr <= 0 {
		return nil, errors.New("grid dimensions must be positive")
	}
	if rmax <= 0 {
		return nil, errors.New("rmax must be positive")
	}
	if m < 0 {
		return nil, errors.New("azimuthal mode index must be non-negative")
	}

	b := &RadialBasis{
		order: p,
		nz:    Nz,
		nr:    Nr,
		r:     make([]float64, Nr),
		kr:    make([]float64, Nr),
	}

	dr := rmax / float64(Nr)
	for j := 0; j < Nr; j++ {
		b.r[j] = dr * (float64(j) + 0.5)
	}
	zeros := besselZeros(m, Nr)
	for n := 0; n < Nr; n++ {
		b.kr[n] = zeros[n] / rmax
	}

	// Synthesis matrix: column n is the order-p basis function sampled on
	// the radial grid.
	b.synth = mat.NewDense(Nr, Nr, nil)
	for j := 0; j < Nr; j++ {
		for n := 0; n < Nr; n++ {
			b.synth.Set(j, n, math.Jn(p, b.kr[n]*b.r[j]))
		}
	}

	anal, err := pseudoInverse(b.synth)
	if err != nil {
		return nil, fmt.Errorf("radial basis order %d, mode %d: %w", p, m, err)
	}
	b.anal = anal

	b.inRe = mat.NewDense(Nz, Nr, nil)
	b.inIm = mat.NewDense(Nz, Nr, nil)
	b.outRe = mat.NewDense(Nz, Nr, nil)
	b.outIm = mat.NewDense(Nz, Nr, nil)
	return b, nil
}

// R returns the radial collocation points.
func (b *RadialBasis) R() []float64 { return b.r }

// Kr returns the spectral collocation points.
func (b *RadialBasis) Kr() []float64 { return b.kr }

// Transform converts a radial-grid plane to the spectral grid. Both slices
// are flat (Nz, Nr) row-major arrays; in and out may not alias.
func (b *RadialBasis) Transform(in, out []complex128) {
	b.apply(b.anal, in, out)
}

// InverseTransform converts a spectral-grid plane back to the radial grid.
func (b *RadialBasis) InverseTransform(in, out []complex128) {
	b.apply(b.synth, in, out)
}

// apply computes out = in * op^T, one matrix product per real/imag part.
// The operator matrices are real, so the parts never mix.
func (b *RadialBasis) apply(op *mat.Dense, in, out []complex128) {
	for iz := 0; iz < b.nz; iz++ {
		row := iz * b.nr
		for ir := 0; ir < b.nr; ir++ {
			v := in[row+ir]
			b.inRe.Set(iz, ir, real(v))
			b.inIm.Set(iz, ir, imag(v))
		}
	}
	b.outRe.Mul(b.inRe, op.T())
	b.outIm.Mul(b.inIm, op.T())
	for iz := 0; iz < b.nz; iz++ {
		row := iz * b.nr
		for ir := 0; ir < b.nr; ir++ {
			out[row+ir] = complex(b.outRe.At(iz, ir), b.outIm.At(iz, ir))
		}
	}
}

// besselZeros returns the first n positive zeros of J_m.
func besselZeros(m, n int) []float64 {
	zeros := make([]float64, n)
	mu := 4 * float64(m) * float64(m)
	for s := 1; s <= n; s++ {
		// McMahon's asymptotic expansion gives the starting guess; Newton
		// polishes it to machine precision.
		beta := (float64(s) + 0.5*float64(m) - 0.25) * math.Pi
		x := beta - (mu-1)/(8*beta) - 4*(mu-1)*(7*mu-31)/(3*math.Pow(8*beta, 3))
		zeros[s-1] = refineBesselZero(m, x)
	}
	return zeros
}

func refineBesselZero(m int, x float64) float64 {
	for iter := 0; iter < 50; iter++ {
		f := math.Jn(m, x)
		// J_m'(x) = (J_{m-1}(x) - J_{m+1}(x)) / 2
		df := 0.5 * (math.Jn(m-1, x) - math.Jn(m+1, x))
		if df == 0 {
			break
		}
		dx := f / df
		x -= dx
		if math.Abs(dx) < 1e-14*math.Abs(x) {
			break
		}
	}
	return x
}

// pseudoInverse computes the Moore-Penrose inverse via SVD. The order m and
// m+-1 synthesis matrices are square but can be poorly conditioned, so small
// singular values are cut off rather than inverted.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	rows, cols := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("SVD factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	cutoff := s[0] * 1e-14 * float64(max(rows, cols))
	vs := mat.NewDense(cols, len(s), nil)
	for j := 0; j < len(s); j++ {
		inv := 0.0
		if s[j] > cutoff {
			inv = 1.0 / s[j]
		}
		for i := 0; i < cols; i++ {
			vs.Set(i, j, v.At(i, j)*inv)
		}
	}

	pinv := mat.NewDense(cols, rows, nil)
	pinv.Mul(vs, u.T())
	return pinv, nil
}
