package main

import (
	"fmt"
	"os"

	"sypiv.io/sypiv-hpc/core"
	"sypiv.io/sypiv-hpc/slurm"
)

type StateCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		JobID string `positional-arg-name:"jobid" description:"Slurm job id"`
	} `positional-args:"true" required:"1"`
}

var stateCommand StateCommand

func (x *StateCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	state, err := slurm.NewClient(os.Getenv).State(appCtx, x.Args.JobID)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, state)
	return nil
}

func init() {
	parser.AddCommand("state",
		"Slurm squeue",
		"Print the scheduler state of a submitted job",
		&stateCommand)
}
