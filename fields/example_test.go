package fields_test

import (
	"fmt"
	"log"
	"math"

	"github.com/bob-anderson-ok/PlasmaFieldSolver/fields"
)

// Example walks through one complete field-update cycle: deposit charge on
// the real-space grid, move the sources to spectral space, advance E and B by
// one timestep, and bring the fields back for gathering.
func Example() {
	const (
		zmax = 20e-6 // box length (m)
		rmax = 10e-6 // box radius (m)
	)

	// Nz is rounded to the nearest odd cell count; dt here is one
	// light-crossing time of a z cell.
	dt := (zmax / 65.0) / fields.SpeedOfLight
	f, err := fields.New(64, zmax, 32, rmax, 2, dt, fields.BackendSerial)
	if err != nil {
		log.Fatalf("failed to build field state: %v", err)
	}
	f.UseTrueRho = true

	fmt.Printf("grid: %d x %d cells, %d azimuthal modes\n", f.Nz, f.Nr, f.Nm)

	// Deposit a static axially symmetric Gaussian charge into the
	// fundamental mode. A real simulation's particle deposition writes the
	// same arrays.
	g := f.Interp[0]
	for iz := 0; iz < g.Nz; iz++ {
		dz := g.Z[iz] - 0.5*zmax
		for ir := 0; ir < g.Nr; ir++ {
			r := g.R[ir]
			g.Rho[iz*g.Nr+ir] = complex(
				math.Exp(-0.5*(dz*dz/(4e-12)+r*r/(2.25e-12))), 0)
		}
	}

	// The static charge fills both ends of the history window; the currents
	// are zero but still go through the correction for form's sake.
	for _, kind := range []fields.FieldKind{fields.KindRhoPrev, fields.KindRhoNext, fields.KindJ} {
		if err := f.Interp2Spect(kind); err != nil {
			log.Fatalf("transform to spectral space failed: %v", err)
		}
	}
	f.CorrectCurrents()

	if err := f.Push(true); err != nil {
		log.Fatalf("push failed: %v", err)
	}

	if err := f.Spect2Interp(fields.KindE); err != nil {
		log.Fatalf("transform to real space failed: %v", err)
	}

	// The axially symmetric charge drives the fundamental mode only.
	mode0 := 0.0
	mode1 := 0.0
	for i := range f.Interp[0].Ez {
		mode0 += real(f.Interp[0].Ez[i])*real(f.Interp[0].Ez[i]) +
			imag(f.Interp[0].Ez[i])*imag(f.Interp[0].Ez[i])
		mode1 += real(f.Interp[1].Ez[i])*real(f.Interp[1].Ez[i]) +
			imag(f.Interp[1].Ez[i])*imag(f.Interp[1].Ez[i])
	}
	fmt.Printf("mode 0 responds: %v\n", mode0 > 0)
	fmt.Printf("mode 1 stays silent: %v\n", mode1 == 0)

	// Output:
	// grid: 65 x 32 cells, 2 azimuthal modes
	// mode 0 responds: true
	// mode 1 stays silent: true
}
