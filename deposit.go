package main

import (
	"math"

	"github.com/bob-anderson-ok/PlasmaFieldSolver/fields"
)

// GaussianPulse is a rigid, axially symmetric charge distribution drifting
// along z at beta*c. It stands in for a particle deposition step: every
// timestep it writes the analytic charge and current into the mode-0
// real-space source arrays. An axially symmetric source has no content in the
// higher azimuthal modes, so those grids stay untouched.
type GaussianPulse struct {
	ChargeC float64 // total charge (C)
	SigmaZ  float64 // longitudinal RMS size (m)
	SigmaR  float64 // radial RMS size (m)
	CenterZ float64 // pulse center at t = 0 (m)
	Beta    float64 // drift velocity as a fraction of c
	BoxZ    float64 // periodic box length (m)
}

func NewGaussianPulse(p *SimParams) *GaussianPulse {
	return &GaussianPulse{
		ChargeC: p.PulseChargeC,
		SigmaZ:  p.PulseSigmaZM,
		SigmaR:  p.PulseSigmaRM,
		CenterZ: p.PulseCenterZM,
		Beta:    p.PulseBeta,
		BoxZ:    p.BoxLengthM,
	}
}

// density evaluates the charge density at (z, r) and time t, folding the
// Gaussian through the periodic z boundary via its nearest image.
func (p *GaussianPulse) density(z, r, t float64) float64 {
	zc := p.CenterZ + p.Beta*fields.SpeedOfLight*t
	dz := z - zc
	dz -= p.BoxZ * math.Round(dz/p.BoxZ)
	norm := p.ChargeC / (math.Pow(2*math.Pi, 1.5) * p.SigmaZ * p.SigmaR * p.SigmaR)
	return norm * math.Exp(-0.5*(dz*dz/(p.SigmaZ*p.SigmaZ)+r*r/(p.SigmaR*p.SigmaR)))
}

// Deposit accumulates the charge per cell at time tRho and the z current per
// cell at time tJ onto the grid. The deposited quantities are extensive, so a
// DivideByVolume pass is needed before the transform to spectral space.
func (p *GaussianPulse) Deposit(g *fields.InterpolationGrid, tRho, tJ float64) {
	vz := p.Beta * fields.SpeedOfLight
	for iz := 0; iz < g.Nz; iz++ {
		z := g.Z[iz]
		for ir := 0; ir < g.Nr; ir++ {
			i := iz*g.Nr + ir
			vol := 1.0 / g.InvVol[ir]
			g.Rho[i] += complex(p.density(z, g.R[ir], tRho)*vol, 0)
			if vz != 0 {
				g.Jz[i] += complex(vz*p.density(z, g.R[ir], tJ)*vol, 0)
			}
		}
	}
}
