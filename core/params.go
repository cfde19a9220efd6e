package core

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Params is the full argument set for one batch_sypiv invocation.
type Params struct {
	DataDir   string  `json:"data_dir" validate:"required"`
	Grid      string  `json:"grid" validate:"required"`
	Flow      string  `json:"flow" validate:"required"`
	XMin      float64 `json:"x_min"`
	XMax      float64 `json:"x_max" validate:"gtfield=XMin"`
	YMin      float64 `json:"y_min"`
	YMax      float64 `json:"y_max" validate:"gtfield=YMin"`
	Snapshots int     `json:"snapshots" validate:"gt=0"`
	OutDir    string  `json:"out_dir" validate:"required"`
}

// ResolveParams builds Params from the environment, falling back to paths
// under cwd. GRID_FILE and FLOW_FILE each win over DATA_DIR independently.
func ResolveParams(getenv func(string) string, cwd string) Params {
	dataDir := Getenv(getenv, DataDirEnv, filepath.Join(cwd, DefaultDataSubdir))
	return Params{
		DataDir:   dataDir,
		Grid:      Getenv(getenv, GridFileEnv, filepath.Join(dataDir, DefaultGridFile)),
		Flow:      Getenv(getenv, FlowFileEnv, filepath.Join(dataDir, DefaultFlowFile)),
		XMin:      FixedXMin,
		XMax:      FixedXMax,
		YMin:      FixedYMin,
		YMax:      FixedYMax,
		Snapshots: FixedSnapshots,
		OutDir:    filepath.Join(cwd, DefaultOutSubdir),
	}
}

func (p Params) Validate() error {
	return validate.Struct(p)
}

// Args returns the batch_sypiv flag vector. Paths are passed through
// untouched.
func (p Params) Args() []string {
	return []string{
		"--grid", p.Grid,
		"--flow", p.Flow,
		"--x-min", formatFloat(p.XMin),
		"--x-max", formatFloat(p.XMax),
		"--y-min", formatFloat(p.YMin),
		"--y-max", formatFloat(p.YMax),
		"--snapshots", strconv.Itoa(p.Snapshots),
		"--out-dir", p.OutDir,
	}
}

// formatFloat keeps a decimal point on whole numbers so 0 is written "0.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
