package slurm

import (
	"context"
	"errors"
	"strings"
)

// StateUnknown is reported once a job has left the queue.
const StateUnknown = "UNKNOWN"

// squeue's complaint about a job id it no longer tracks
const invalidJobID = "Invalid job id specified"

// State returns the long-form Slurm state of jobID (PENDING, RUNNING, ...).
func (c *Client) State(ctx context.Context, jobID string) (string, error) {
	if len(jobID) == 0 {
		return "", errors.New("squeue: missing job id")
	}
	out, err := run(ctx, SQueueName, c.SQueue, "-h", "-j", jobID, "-o", "%T")
	if err != nil {
		if strings.Contains(err.Error(), invalidJobID) {
			return StateUnknown, nil
		}
		return "", err
	}
	if len(out) == 0 {
		return StateUnknown, nil
	}
	// one line per job step; the first is the job itself
	return strings.Fields(out)[0], nil
}
