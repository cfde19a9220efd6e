package main

import (
	"errors"
	"os"

	"sypiv.io/sypiv-hpc/core"
	logger "sypiv.io/sypiv-hpc/logger"
)

type RunCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

var runCommand RunCommand

func (x *RunCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.New("run: cannot determine working directory")
	}
	params := core.ResolveParams(os.Getenv, cwd)
	logger.InfoObj("params", params)

	launcher := core.NewLauncher(os.Getenv)
	result, err := launcher.Run(appCtx, params)
	if err != nil {
		return err
	}
	if result.Code != 0 {
		return &core.ExitError{Code: result.Code, Err: result.Err}
	}
	return nil
}

func init() {
	parser.AddCommand("run",
		"Run batch_sypiv",
		"Resolve grid, flow and output paths from the environment and run the syPIV batch pipeline, exiting with its status",
		&runCommand)
}
