package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"sypiv.io/sypiv-hpc/core"
)

type OutputsCommand struct {
	Help  bool `short:"h" long:"help" description:"Show this help message"`
	Check bool `short:"c" long:"check" description:"fail unless every snapshot pair is present"`
}

var outputsCommand OutputsCommand

func (x *OutputsCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.New("outputs: cannot determine working directory")
	}
	artifacts := core.Inventory(core.ResolveParams(os.Getenv, cwd))
	table := [][]string{
		{"SNAPSHOT", "FRAME", "PRESENT", "SIZE", "PATH"},
	}
	missing := 0
	for _, a := range artifacts {
		size := "-"
		if a.Present {
			size = strconv.FormatInt(a.Size, 10)
		} else {
			missing++
		}
		table = append(table, []string{
			strconv.Itoa(a.Snapshot),
			strconv.Itoa(a.Frame),
			strconv.FormatBool(a.Present),
			size,
			a.Path,
		})
	}
	core.PrintTable(stdout, table, false)
	if x.Check && missing > 0 {
		return fmt.Errorf("outputs: %d of %d artifacts missing", missing, len(artifacts))
	}
	return nil
}

func init() {
	parser.AddCommand("outputs",
		"List output arrays",
		"List the snapshot image arrays batch_sypiv writes to the output directory",
		&outputsCommand)
}
