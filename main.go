package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bob-anderson-ok/PlasmaFieldSolver/fields"
)

const version = "1_0_0"

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: PlasmaFieldSolver <parameter-file>")
		os.Exit(1)
	}

	// Read the TOML or Json5 (or Json) parameter file
	params, err := LoadParams(args[1])
	if err != nil {
		fmt.Println(fmt.Errorf("\n\t%w\n", err))
		os.Exit(2)
	}

	msg, ok := params.Validate()
	if !ok {
		fmt.Println(msg)
		os.Exit(3)
	}

	// Check for user wanting printout of the complete parameter set
	if params.ShowInput {
		fmt.Printf("\nPrintout of complete parameter set...\n%+v\n", *params)
	}

	fmt.Printf("\nVersion %s\n\n", version)

	backend := fields.BackendSerial
	if params.ParallelBackend {
		backend = fields.BackendParallel
	}

	dz := params.BoxLengthM / float64(params.GridCellsZ)
	dr := params.BoxRadiusM / float64(params.GridCellsR)
	dt := params.TimestepFraction * dz / fields.SpeedOfLight
	fmt.Printf("Resolution is %0.4g m along z and %0.4g m along r\n", dz, dr)
	fmt.Printf("Timestep is %0.4g s (%0.2f light-crossing times of a z cell)\n", dt, params.TimestepFraction)
	fmt.Printf("Pulse: %0.4g C, sigma_z %0.4g m, sigma_r %0.4g m, beta %0.3f\n\n",
		params.PulseChargeC, params.PulseSigmaZM, params.PulseSigmaRM, params.PulseBeta)

	start := time.Now() // Time construction of the field state

	f, err := fields.New(params.GridCellsZ, params.BoxLengthM,
		params.GridCellsR, params.BoxRadiusM, params.NumModes, dt, backend)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tConstruction of the field state failed: %w\n", err))
		os.Exit(4)
	}
	f.UseTrueRho = params.UseTrueRho

	fmt.Printf("Construction of the field state (%d x %d grid, %d modes) took %s\n",
		f.Nz, f.Nr, f.Nm, time.Since(start))

	pulse := NewGaussianPulse(params)
	interp0 := f.Interp[0]

	// Seed rho_prev with the charge distribution at t = 0, so the first push
	// sees a consistent charge history.
	checkRun(f.Erase(fields.KindRho), 5)
	checkRun(f.Erase(fields.KindJ), 5)
	pulse.Deposit(interp0, 0.0, 0.0)
	checkRun(f.DivideByVolume(fields.KindRho), 5)
	checkRun(f.Interp2Spect(fields.KindRhoPrev), 5)

	start = time.Now() // Time the stepping loop

	for step := 0; step < params.NumSteps; step++ {
		tNow := float64(step) * dt

		checkRun(f.Erase(fields.KindRho), 6)
		checkRun(f.Erase(fields.KindJ), 6)

		// Charge is deposited at the end of the step, current at its middle.
		pulse.Deposit(interp0, tNow+dt, tNow+0.5*dt)

		checkRun(f.DivideByVolume(fields.KindRho), 6)
		checkRun(f.DivideByVolume(fields.KindJ), 6)

		checkRun(f.Interp2Spect(fields.KindJ), 7)
		checkRun(f.Interp2Spect(fields.KindRhoNext), 7)

		if params.FilterCurrents {
			checkRun(f.FilterSpect(fields.KindJ), 8)
			checkRun(f.FilterSpect(fields.KindRhoNext), 8)
		}

		f.CorrectCurrents()

		if err := f.Push(true); err != nil {
			fmt.Println(fmt.Errorf("\n\tPush at step %d failed: %w\n", step, err))
			os.Exit(9)
		}

		if outputDue(step, params) {
			if err := writeFieldSnapshots(f, params, step); err != nil {
				fmt.Println(fmt.Errorf("\n\tWriting of field snapshots at step %d failed: %w\n", step, err))
				os.Exit(10)
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("Stepping loop (%d steps) took %s  (%s per step)\n",
		params.NumSteps, elapsed, elapsed/time.Duration(params.NumSteps))

	fmt.Printf("\nTotal program run time is %s\n", time.Since(programStart))
}

func checkRun(err error, exitCode int) {
	if err != nil {
		fmt.Println(fmt.Errorf("\n\t%w\n", err))
		os.Exit(exitCode)
	}
}

func outputDue(step int, params *SimParams) bool {
	if params.OutputEveryNSteps == 0 {
		// Final step only
		return step == params.NumSteps-1
	}
	return (step+1)%params.OutputEveryNSteps == 0 || step == params.NumSteps-1
}

// writeFieldSnapshots brings E and B back to the interpolation grid and saves
// a grayscale r-z cross section of |Ez| plus an on-axis Ez profile plot, both
// from the fundamental mode.
func writeFieldSnapshots(f *fields.Fields, params *SimParams, step int) error {
	if err := f.Spect2Interp(fields.KindE); err != nil {
		return err
	}
	if err := f.Spect2Interp(fields.KindB); err != nil {
		return err
	}

	g := f.Interp[0]

	img, err := FieldToGrayPercentile(g.Ez, g.Nz, g.Nr, 0.0, 99.5)
	if err != nil {
		return fmt.Errorf("creation of the display image failed: %w", err)
	}
	name := fmt.Sprintf("%s_ez_%05d.png", params.OutputPrefix, step+1)
	if err := SaveGrayPNG(name, img); err != nil {
		return fmt.Errorf("writing of %q failed: %w", name, err)
	}

	name = fmt.Sprintf("%s_ez_profile_%05d.png", params.OutputPrefix, step+1)
	title := fmt.Sprintf("%s - on-axis Ez after step %d", params.Title, step+1)
	if err := SaveAxisProfilePlot(name, g.Z, g.Ez, g.Nr, title, "Ez (V/m)"); err != nil {
		return fmt.Errorf("writing of %q failed: %w", name, err)
	}
	return nil
}
