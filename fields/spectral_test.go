package fields

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSpectralGrid builds a mode-m spectral grid on a realistic wavenumber
// mesh, including the kz = 0 row.
func testSpectralGrid(t *testing.T, nz, nr, m int) *SpectralGrid {
	t.Helper()
	kz := waveNumbers(nz, 0.5e-6)
	b, err := NewRadialBasis(m, m, nz, nr, 10e-6)
	require.NoError(t, err)
	return NewSpectralGrid(kz, b.Kr(), m, serialDispatcher{})
}

func TestCorrectCurrentsSatisfiesContinuity(t *testing.T) {
	const dt = 1e-15
	g := testSpectralGrid(t, 9, 8, 0)

	rng := rand.New(rand.NewSource(4))
	fillComplex(rng, g.Jp)
	fillComplex(rng, g.Jm)
	fillComplex(rng, g.Jz)
	fillComplex(rng, g.RhoPrev)
	fillComplex(rng, g.RhoNext)

	g.CorrectCurrents(dt)

	// After correction the discrete continuity equation holds at every
	// wavenumber: (rho_next - rho_prev)/dt + i*kz*Jz + kr*(Jp - Jm) = 0.
	nr := g.Nr
	for i := range g.Jz {
		kz := complex(g.Kz[i/nr], 0)
		kr := complex(g.Kr[i%nr], 0)
		residual := (g.RhoNext[i]-g.RhoPrev[i])/complex(dt, 0) +
			1i*kz*g.Jz[i] + kr*(g.Jp[i]-g.Jm[i])
		// Residual scale before correction is ~1/dt.
		assert.Less(t, cmplx.Abs(residual), 1e-10/dt, "continuity residual at index %d", i)
	}
}

func TestCorrectCurrentsLeavesZeroModeUntouched(t *testing.T) {
	// A grid whose mesh contains the k = 0 point. Bessel-zero kr grids never
	// include zero, so the mesh is constructed directly.
	kz := []float64{0, 2e5, -2e5}
	kr := []float64{0, 3e5}
	g := NewSpectralGrid(kz, kr, 0, serialDispatcher{})

	rng := rand.New(rand.NewSource(5))
	fillComplex(rng, g.Jp)
	fillComplex(rng, g.Jm)
	fillComplex(rng, g.Jz)
	fillComplex(rng, g.RhoPrev)
	fillComplex(rng, g.RhoNext)

	jp0, jm0, jz0 := g.Jp[0], g.Jm[0], g.Jz[0]
	g.CorrectCurrents(1e-15)

	assert.Equal(t, jp0, g.Jp[0])
	assert.Equal(t, jm0, g.Jm[0])
	assert.Equal(t, jz0, g.Jz[0])
}

func TestPushRhoRotatesHistory(t *testing.T) {
	g := testSpectralGrid(t, 5, 4, 0)

	rng := rand.New(rand.NewSource(6))
	fillComplex(rng, g.RhoNext)
	fillComplex(rng, g.RhoPrev)
	next := append([]complex128(nil), g.RhoNext...)

	g.PushRho()

	assert.Equal(t, next, g.RhoPrev)
	for i, v := range g.RhoNext {
		assert.Equal(t, complex(0, 0), v, "rho_next not cleared at index %d", i)
	}
}

func TestPushEBModeMismatch(t *testing.T) {
	g := testSpectralGrid(t, 5, 4, 1)
	ps := NewPsatdCoeffs(g.Kz, g.Kr, 0, 1e-15)

	err := g.PushEB(ps, false, false)
	require.ErrorIs(t, err, ErrModeMismatch)
}

// spectralEnergy is the quantity the exact vacuum propagator conserves for
// divergence-free fields: per wavenumber |Fp|^2 + |Fm|^2 + |Fz|^2/2 for each
// of E and c*B. The 1/2 weight on the z component comes from the rotating
// p/m normalization of the transverse pair.
func spectralEnergy(g *SpectralGrid) float64 {
	c2 := SpeedOfLight * SpeedOfLight
	e := 0.0
	for i := range g.Ez {
		abs2 := func(v complex128) float64 { return real(v)*real(v) + imag(v)*imag(v) }
		e += abs2(g.Ep[i]) + abs2(g.Em[i]) + 0.5*abs2(g.Ez[i])
		e += c2 * (abs2(g.Bp[i]) + abs2(g.Bm[i]) + 0.5*abs2(g.Bz[i]))
	}
	return e
}

func TestVacuumPushConservesEnergy(t *testing.T) {
	const dt = 0.4e-15
	g := testSpectralGrid(t, 9, 8, 0)
	ps := NewPsatdCoeffs(g.Kz, g.Kr, 0, dt)

	// Divergence-free initial B, zero E. The discrete divergence in the
	// p/m/z basis is kr*(Fp - Fm) + i*kz*Fz, so Bz is solved from the
	// transverse components; on the kz = 0 row Bm = Bp and Bz = 0 instead.
	rng := rand.New(rand.NewSource(7))
	fillComplex(rng, g.Bp)
	fillComplex(rng, g.Bm)
	nr := g.Nr
	for i := range g.Bz {
		kz := g.Kz[i/nr]
		kr := g.Kr[i%nr]
		if kz == 0 {
			g.Bm[i] = g.Bp[i]
			g.Bz[i] = 0
		} else {
			g.Bz[i] = complex(0, kr/kz) * (g.Bp[i] - g.Bm[i])
		}
	}

	before := spectralEnergy(g)
	require.Greater(t, before, 0.0)

	for step := 0; step < 20; step++ {
		require.NoError(t, g.PushEB(ps, false, false))
	}

	after := spectralEnergy(g)
	assert.InDelta(t, before, after, before*1e-11)
}

func TestSpectralFilterWeights(t *testing.T) {
	g := testSpectralGrid(t, 9, 8, 0)

	for i := range g.Ez {
		g.Ep[i] = 1
		g.Em[i] = 1
		g.Ez[i] = 1
	}
	require.NoError(t, g.Filter(KindE))

	for i, w := range g.filterArray {
		assert.InDelta(t, w, real(g.Ez[i]), 1e-15, "weight mismatch at index %d", i)
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
	}
}

func TestSpectralFilterRejectsRho(t *testing.T) {
	g := testSpectralGrid(t, 5, 4, 0)
	err := g.Filter(KindRho)
	require.ErrorIs(t, err, ErrInvalidFieldKind)
}
