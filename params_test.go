package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const tomlParams = `
title = "test run"
grid_cells_z = 64
grid_cells_r = 32
num_azimuthal_modes = 2
box_length_m = 20e-6
box_radius_m = 10e-6
timestep_fraction = 0.9
num_steps = 100
output_every_n_steps = 25
use_true_rho_bool = true
parallel_backend_bool = true
pulse_charge_coulomb = -1e-12
pulse_sigma_z_m = 2e-6
pulse_sigma_r_m = 1.5e-6
pulse_center_z_m = 10e-6
pulse_beta = 0.95
`

const json5Params = `{
	// JSON5 allows comments and trailing commas
	title: "test run",
	grid_cells_z: 64,
	grid_cells_r: 32,
	num_azimuthal_modes: 2,
	box_length_m: 20e-6,
	box_radius_m: 10e-6,
	timestep_fraction: 0.9,
	num_steps: 100,
	output_every_n_steps: 25,
	use_true_rho_bool: true,
	parallel_backend_bool: true,
	pulse_charge_coulomb: -1e-12,
	pulse_sigma_z_m: 2e-6,
	pulse_sigma_r_m: 1.5e-6,
	pulse_center_z_m: 10e-6,
	pulse_beta: 0.95,
}`

func checkLoadedParams(t *testing.T, p *SimParams) {
	t.Helper()
	assert.Equal(t, "test run", p.Title)
	assert.Equal(t, 64, p.GridCellsZ)
	assert.Equal(t, 32, p.GridCellsR)
	assert.Equal(t, 2, p.NumModes)
	assert.InDelta(t, 20e-6, p.BoxLengthM, 1e-20)
	assert.InDelta(t, 10e-6, p.BoxRadiusM, 1e-20)
	assert.InDelta(t, 0.9, p.TimestepFraction, 1e-15)
	assert.Equal(t, 100, p.NumSteps)
	assert.Equal(t, 25, p.OutputEveryNSteps)
	assert.True(t, p.UseTrueRho)
	assert.True(t, p.ParallelBackend)
	assert.InDelta(t, -1e-12, p.PulseChargeC, 1e-25)
	assert.InDelta(t, 0.95, p.PulseBeta, 1e-15)

	msg, ok := p.Validate()
	assert.True(t, ok, msg)
}

func TestLoadParamsTOML(t *testing.T) {
	path := writeTempFile(t, "run.toml", tomlParams)
	p, err := LoadParams(path)
	require.NoError(t, err)
	checkLoadedParams(t, p)
	// Defaults survive for fields the file does not mention.
	assert.Equal(t, "fields", p.OutputPrefix)
	assert.False(t, p.FilterCurrents)
}

func TestLoadParamsJSON5(t *testing.T) {
	path := writeTempFile(t, "run.json5", json5Params)
	p, err := LoadParams(path)
	require.NoError(t, err)
	checkLoadedParams(t, p)
}

func TestLoadParamsRejectsUnknownExtension(t *testing.T) {
	path := writeTempFile(t, "run.yaml", "grid_cells_z: 64")
	_, err := LoadParams(path)
	assert.Error(t, err)
}

func TestLoadParamsMissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateCatchesBadValues(t *testing.T) {
	base := func() SimParams {
		p := defaultParams()
		p.GridCellsZ = 64
		p.GridCellsR = 32
		p.NumModes = 1
		p.BoxLengthM = 20e-6
		p.BoxRadiusM = 10e-6
		p.NumSteps = 10
		p.PulseSigmaZM = 2e-6
		p.PulseSigmaRM = 1.5e-6
		p.PulseCenterZM = 10e-6
		return p
	}

	good := base()
	msg, ok := good.Validate()
	require.True(t, ok, msg)

	cases := []struct {
		name   string
		mutate func(*SimParams)
	}{
		{"too few z cells", func(p *SimParams) { p.GridCellsZ = 2 }},
		{"no r cells", func(p *SimParams) { p.GridCellsR = 0 }},
		{"single r cell", func(p *SimParams) { p.GridCellsR = 1 }},
		{"no modes", func(p *SimParams) { p.NumModes = 0 }},
		{"negative box length", func(p *SimParams) { p.BoxLengthM = -1 }},
		{"zero timestep fraction", func(p *SimParams) { p.TimestepFraction = 0 }},
		{"no steps", func(p *SimParams) { p.NumSteps = 0 }},
		{"zero sigma z", func(p *SimParams) { p.PulseSigmaZM = 0 }},
		{"superluminal pulse", func(p *SimParams) { p.PulseBeta = 1.0 }},
		{"pulse outside box", func(p *SimParams) { p.PulseCenterZM = 1.0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base()
			tc.mutate(&p)
			_, ok := p.Validate()
			assert.False(t, ok)
		})
	}
}
