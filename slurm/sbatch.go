package slurm

import (
	"context"
	"errors"
	"regexp"
)

var submittedRe = regexp.MustCompile(`Submitted batch job (\d+)`)

// Submit queues the job script at path and returns the Slurm job id.
func (c *Client) Submit(ctx context.Context, path string) (string, error) {
	out, err := run(ctx, SBatchName, c.SBatch, path)
	if err != nil {
		return "", err
	}
	// output like "Submitted batch job 49229449"
	match := submittedRe.FindStringSubmatch(out)
	if match == nil {
		return "", errors.New("sbatch: unexpected output: " + out)
	}
	return match[1], nil
}
