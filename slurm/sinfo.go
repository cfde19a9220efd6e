package slurm

import (
	"context"
	"strings"
)

type Partition struct {
	Name      string
	Avail     string
	TimeLimit string
	Nodes     string
	Default   bool
}

// Partitions lists the partitions a job script may request.
func (c *Client) Partitions(ctx context.Context) ([]Partition, error) {
	out, err := run(ctx, SInfoName, c.SInfo, "-h", "-o", "%P %a %l %D")
	if err != nil {
		return nil, err
	}
	partitions := []Partition{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		// sinfo marks the default partition with a trailing '*'
		name := fields[0]
		isDefault := strings.HasSuffix(name, "*")
		partitions = append(partitions, Partition{
			Name:      strings.TrimSuffix(name, "*"),
			Avail:     fields[1],
			TimeLimit: fields[2],
			Nodes:     fields[3],
			Default:   isDefault,
		})
	}
	return partitions, nil
}
