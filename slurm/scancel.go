package slurm

import (
	"context"
	"errors"
)

// Cancel signals jobID through scancel. With force set the job is killed
// with SIGKILL instead of the scheduler's default termination sequence.
func (c *Client) Cancel(ctx context.Context, jobID string, force bool) error {
	if len(jobID) == 0 {
		return errors.New("scancel: missing job id")
	}
	args := []string{}
	if force {
		args = append(args, "--signal=KILL")
	}
	_, err := run(ctx, SCancelName, c.SCancel, append(args, jobID)...)
	return err
}
