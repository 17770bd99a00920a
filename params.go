package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/KevinWang15/go-json5"
)

// SimParams collects everything a simulation run needs from its parameter
// file. TOML and JSON5 files are both accepted; the file extension decides
// which parser is used.
type SimParams struct {
	Title     string `toml:"title" json:"title"`
	ShowInput bool   `toml:"show_input_bool" json:"show_input_bool"`

	GridCellsZ int     `toml:"grid_cells_z" json:"grid_cells_z"`
	GridCellsR int     `toml:"grid_cells_r" json:"grid_cells_r"`
	NumModes   int     `toml:"num_azimuthal_modes" json:"num_azimuthal_modes"`
	BoxLengthM float64 `toml:"box_length_m" json:"box_length_m"`
	BoxRadiusM float64 `toml:"box_radius_m" json:"box_radius_m"`

	// TimestepFraction sets dt as a fraction of the light-crossing time of
	// one z cell. The spectral push is exact in vacuum at any fraction; 1.0
	// is the customary choice.
	TimestepFraction float64 `toml:"timestep_fraction" json:"timestep_fraction"`

	NumSteps          int    `toml:"num_steps" json:"num_steps"`
	OutputEveryNSteps int    `toml:"output_every_n_steps" json:"output_every_n_steps"`
	OutputPrefix      string `toml:"output_prefix" json:"output_prefix"`

	UseTrueRho      bool `toml:"use_true_rho_bool" json:"use_true_rho_bool"`
	ParallelBackend bool `toml:"parallel_backend_bool" json:"parallel_backend_bool"`
	FilterCurrents  bool `toml:"filter_currents_bool" json:"filter_currents_bool"`

	PulseChargeC  float64 `toml:"pulse_charge_coulomb" json:"pulse_charge_coulomb"`
	PulseSigmaZM  float64 `toml:"pulse_sigma_z_m" json:"pulse_sigma_z_m"`
	PulseSigmaRM  float64 `toml:"pulse_sigma_r_m" json:"pulse_sigma_r_m"`
	PulseCenterZM float64 `toml:"pulse_center_z_m" json:"pulse_center_z_m"`
	PulseBeta     float64 `toml:"pulse_beta" json:"pulse_beta"`
}

func defaultParams() SimParams {
	return SimParams{
		Title:            "PlasmaFieldSolver run",
		TimestepFraction: 1.0,
		OutputPrefix:     "fields",
		PulseBeta:        0.0,
	}
}

// LoadParams reads and parses a TOML (.toml) or JSON5 (.json, .json5)
// parameter file. Missing optional fields keep their defaults.
func LoadParams(path string) (*SimParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attempt to read parameter file %q failed: %w", path, err)
	}

	params := defaultParams()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("format error in file %q: %w", path, err)
		}
	case ".json", ".json5":
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("format error in file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("parameter file %q must end in .toml, .json or .json5", path)
	}
	return &params, nil
}

// Validate checks the parameter set and reports the first problem found.
func (p *SimParams) Validate() (string, bool) {
	msg := "No problem found in parameter file" // Presumed success.

	if p.GridCellsZ < 3 {
		return "grid_cells_z: must be at least 3", false
	}
	if p.GridCellsR < 2 {
		return "grid_cells_r: must be at least 2", false
	}
	if p.NumModes < 1 {
		return "num_azimuthal_modes: must be at least 1", false
	}
	if p.BoxLengthM <= 0 {
		return "box_length_m: must be positive", false
	}
	if p.BoxRadiusM <= 0 {
		return "box_radius_m: must be positive", false
	}
	if p.TimestepFraction <= 0 {
		return "timestep_fraction: must be positive", false
	}
	if p.NumSteps < 1 {
		return "num_steps: must be at least 1", false
	}
	if p.OutputEveryNSteps < 0 {
		return "output_every_n_steps: must not be negative", false
	}
	if p.PulseSigmaZM <= 0 {
		return "pulse_sigma_z_m: must be positive", false
	}
	if p.PulseSigmaRM <= 0 {
		return "pulse_sigma_r_m: must be positive", false
	}
	if p.PulseBeta < 0 || p.PulseBeta >= 1 {
		return "pulse_beta: must be in [0, 1)", false
	}
	if p.PulseCenterZM < 0 || p.PulseCenterZM > p.BoxLengthM {
		return "pulse_center_z_m: must lie inside the box", false
	}
	return msg, true
}
