package slurm

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"sypiv.io/sypiv-hpc/core"
	logger "sypiv.io/sypiv-hpc/logger"
)

// Slurm CLI commands
const (
	SBatchName  = "sbatch"
	SCancelName = "scancel"
	SQueueName  = "squeue"
	SInfoName   = "sinfo"
)

// Environment overrides for the Slurm binaries
const (
	SBatchEnv  = "SYPIV_SBATCH"
	SCancelEnv = "SYPIV_SCANCEL"
	SQueueEnv  = "SYPIV_SQUEUE"
	SInfoEnv   = "SYPIV_SINFO"
)

// ScriptCmdPrefix marks a Slurm directive line in a job script
const ScriptCmdPrefix = "SBATCH"

// Client drives the Slurm command line tools.
type Client struct {
	SBatch  string
	SCancel string
	SQueue  string
	SInfo   string
}

func NewClient(getenv func(string) string) *Client {
	return &Client{
		SBatch:  core.Getenv(getenv, SBatchEnv, SBatchName),
		SCancel: core.Getenv(getenv, SCancelEnv, SCancelName),
		SQueue:  core.Getenv(getenv, SQueueEnv, SQueueName),
		SInfo:   core.Getenv(getenv, SInfoEnv, SInfoName),
	}
}

// run executes one Slurm tool and returns its trimmed stdout. Errors are
// prefixed with the tool name and carry whatever it printed to stderr.
func run(ctx context.Context, name, bin string, args ...string) (string, error) {
	logger.DebugObj(name, append([]string{bin}, args...))
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) == 0 {
			msg = err.Error()
		}
		return "", errors.New(name + ": " + msg)
	}
	return strings.TrimSpace(string(out)), nil
}
