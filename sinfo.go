package main

import (
	"os"

	"sypiv.io/sypiv-hpc/core"
	"sypiv.io/sypiv-hpc/slurm"
)

type PartitionsCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

var partitionsCommand PartitionsCommand

func printPartitionInfo(partitions []slurm.Partition) {
	table := [][]string{
		{"PARTITION", "AVAIL", "TIMELIMIT", "NODES"},
	}
	for _, p := range partitions {
		name := p.Name
		if p.Default {
			name += "*"
		}
		table = append(table, []string{name, p.Avail, p.TimeLimit, p.Nodes})
	}
	core.PrintTable(stdout, table, false)
}

func (x *PartitionsCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	partitions, err := slurm.NewClient(os.Getenv).Partitions(appCtx)
	if err != nil {
		return err
	}
	printPartitionInfo(partitions)
	return nil
}

func init() {
	parser.AddCommand("partitions",
		"Slurm sinfo",
		"View the partitions a job script can request",
		&partitionsCommand)
}
