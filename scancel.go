package main

import (
	"os"

	"sypiv.io/sypiv-hpc/core"
	"sypiv.io/sypiv-hpc/slurm"
)

type CancelCommand struct {
	Help  bool `short:"h" long:"help" description:"Show this help message"`
	Force bool `short:"f" long:"force" description:"kill the job with SIGKILL"`
	Args  struct {
		JobID string `positional-arg-name:"jobid" description:"Slurm job id"`
	} `positional-args:"true" required:"1"`
}

var cancelCommand CancelCommand

func (x *CancelCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	return slurm.NewClient(os.Getenv).Cancel(appCtx, x.Args.JobID, x.Force)
}

func init() {
	parser.AddCommand("cancel",
		"Slurm scancel",
		"Used to signal a submitted syPIV job",
		&cancelCommand)
}
