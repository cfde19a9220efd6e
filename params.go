package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sypiv.io/sypiv-hpc/core"
)

type ParamsCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

var paramsCommand ParamsCommand

type resolvedParams struct {
	Params  core.Params `json:"params"`
	Command []string    `json:"command"`
}

func (x *ParamsCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.New("params: cannot determine working directory")
	}
	params := core.ResolveParams(os.Getenv, cwd)
	data, err := json.MarshalIndent(resolvedParams{
		Params:  params,
		Command: core.NewLauncher(os.Getenv).Command(params),
	}, "", "	")
	if err != nil {
		return errors.New("params: marshal JSON")
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

func init() {
	parser.AddCommand("params",
		"Show resolved parameters",
		"Print the parameters and command line run would use, without running anything",
		&paramsCommand)
}
