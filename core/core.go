package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Environment overrides
const (
	DataDirEnv  = "DATA_DIR"
	GridFileEnv = "GRID_FILE"
	FlowFileEnv = "FLOW_FILE"
	PythonEnv   = "SYPIV_PYTHON"
	RunIDEnv    = "SYPIV_RUN_ID"
)

// Default constants
const (
	DefaultDataSubdir = "data/cylinder_les"
	DefaultGridFile   = "cylinder.sp.x"
	DefaultFlowFile   = "sol-0000010.q"
	DefaultOutSubdir  = "sypiv_output"
	DefaultPython     = "python"
	BatchModule       = "sypivlib.scripts.batch_sypiv"
	DotEnvFilename    = ".env"
)

// Interrogation area and snapshot count handed to batch_sypiv. These are
// not overridable from the environment.
const (
	FixedXMin      = 0.0
	FixedXMax      = 0.003
	FixedYMin      = 0.0
	FixedYMax      = 0.001
	FixedSnapshots = 3
)

// ExitError carries a child exit status up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func CreateHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}

// Getenv returns the value of key, or def when key is unset or empty.
func Getenv(getenv func(string) string, key, def string) string {
	if val := getenv(key); len(val) > 0 {
		return val
	}
	return def
}

// LoadDotEnv reads KEY=VALUE pairs from dir/.env into the process
// environment. Variables already set are left alone; a missing file is
// not an error.
func LoadDotEnv(dir string) error {
	filename := filepath.Join(dir, DotEnvFilename)
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("core: load %s: %w", filename, err)
	}
	return nil
}

func PrintTable(w io.Writer, table [][]string, border bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for index, row := range table {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
		if border && index == 0 {
			sep := make([]string, len(row))
			for i, col := range row {
				sep[i] = strings.Repeat("-", len(col))
			}
			fmt.Fprintln(tw, strings.Join(sep, "\t"))
		}
	}
	tw.Flush()
}
