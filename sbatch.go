package main

import (
	"errors"
	"fmt"
	"os"

	"sypiv.io/sypiv-hpc/core"
	logger "sypiv.io/sypiv-hpc/logger"
	"sypiv.io/sypiv-hpc/slurm"
)

const defaultJobScript = "sypiv.sbatch"

type SubmitCommand struct {
	Help    bool          `short:"h" long:"help" description:"Show this help message"`
	Options ScriptOptions `group:"Job Script Options"`
	Script  string        `short:"o" long:"script" description:"path the job script is written to" default:"sypiv.sbatch"`
}

var submitCommand SubmitCommand

func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	res, err := x.Options.resources()
	if err != nil {
		return errors.New("sbatch: " + err.Error())
	}
	script := x.Script
	if len(script) == 0 {
		script = defaultJobScript
	}
	if err := writeJobScript(script, res); err != nil {
		return err
	}
	if f, err := os.Open(script); err == nil {
		if js, perr := slurm.ParseJobScript(slurm.ScriptCmdPrefix, f); perr == nil {
			logger.InfoObj("directives", slurm.Directives(js.Args))
		}
		f.Close()
	}

	jobID, err := slurm.NewClient(os.Getenv).Submit(appCtx, script)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Submitted batch job %s (\"%s\")\n", jobID, res.JobName)
	return nil
}

func init() {
	parser.AddCommand("submit",
		"Slurm sbatch",
		"Render the job script and submit it to Slurm with sbatch",
		&submitCommand)
}
