package main

import (
	"math"
	"testing"

	"github.com/bob-anderson-ok/PlasmaFieldSolver/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianPulseDepositsTotalCharge(t *testing.T) {
	const (
		zmax = 40e-6
		rmax = 20e-6
	)
	f, err := fields.New(129, zmax, 64, rmax, 1, 1e-15, fields.BackendSerial)
	require.NoError(t, err)

	pulse := &GaussianPulse{
		ChargeC: -3e-12,
		SigmaZ:  2e-6,
		SigmaR:  1.5e-6,
		CenterZ: 0.5 * zmax,
		Beta:    0.5,
		BoxZ:    zmax,
	}
	g := f.Interp[0]
	pulse.Deposit(g, 0, 0)

	// The deposited quantities are extensive, so the cell sum is the total
	// charge. The pulse sits well inside the box; midpoint sampling of the
	// Gaussian is accurate to well under a percent at this resolution.
	total := 0.0
	for _, v := range g.Rho {
		total += real(v)
	}
	assert.InDelta(t, pulse.ChargeC, total, 0.01*math.Abs(pulse.ChargeC))

	// Current tracks the drift: Jz = beta*c*rho cell by cell when both are
	// sampled at the same time.
	for i := range g.Rho {
		want := 0.5 * fields.SpeedOfLight * real(g.Rho[i])
		assert.InDelta(t, want, real(g.Jz[i]), 1e-12*math.Abs(want)+1e-40)
	}
}

func TestGaussianPulseWrapsPeriodically(t *testing.T) {
	const zmax = 40e-6
	f, err := fields.New(129, zmax, 32, 20e-6, 1, 1e-15, fields.BackendSerial)
	require.NoError(t, err)

	pulse := &GaussianPulse{
		ChargeC: 1e-12,
		SigmaZ:  2e-6,
		SigmaR:  1.5e-6,
		CenterZ: 0.5 * zmax,
		Beta:    1.0 - 1e-9, // ~c, so one box length per Nz light-crossings
		BoxZ:    zmax,
	}

	// A drift of exactly one box length must reproduce the t = 0 density.
	g := f.Interp[0]
	pulse.Deposit(g, 0, 0)
	rho0 := append([]complex128(nil), g.Rho...)

	require.NoError(t, f.Erase(fields.KindRho))
	require.NoError(t, f.Erase(fields.KindJ))
	period := zmax / (pulse.Beta * fields.SpeedOfLight)
	pulse.Deposit(g, period, period)

	for i := range rho0 {
		assert.InDelta(t, real(rho0[i]), real(g.Rho[i]), 1e-6*real(rho0[i])+1e-30)
	}
}
