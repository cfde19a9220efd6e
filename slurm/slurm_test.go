package slurm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes a stand-in for a Slurm binary that logs its arguments to
// <dir>/<name>.args and then runs body.
func fakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"$@\" > \"" + path + ".args\"\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func readArgs(t *testing.T, tool string) string {
	t.Helper()
	data, err := os.ReadFile(tool + ".args")
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestNewClientOverrides(t *testing.T) {
	c := NewClient(func(key string) string {
		if key == SBatchEnv {
			return "/opt/slurm/bin/sbatch"
		}
		return ""
	})
	assert.Equal(t, "/opt/slurm/bin/sbatch", c.SBatch)
	assert.Equal(t, SCancelName, c.SCancel)
	assert.Equal(t, SQueueName, c.SQueue)
	assert.Equal(t, SInfoName, c.SInfo)
}

func TestSubmit(t *testing.T) {
	dir := t.TempDir()
	c := &Client{SBatch: fakeTool(t, dir, "sbatch", "echo 'Submitted batch job 49229449'")}

	id, err := c.Submit(context.Background(), "/jobs/sypiv.sbatch")
	require.NoError(t, err)
	assert.Equal(t, "49229449", id)
	assert.Equal(t, "/jobs/sypiv.sbatch", readArgs(t, c.SBatch))
}

func TestSubmitFailure(t *testing.T) {
	dir := t.TempDir()
	c := &Client{SBatch: fakeTool(t, dir, "sbatch",
		"echo 'sbatch: error: invalid partition specified' >&2; exit 1")}

	_, err := c.Submit(context.Background(), "job.sbatch")
	require.Error(t, err)
	assert.Equal(t, "sbatch: sbatch: error: invalid partition specified", err.Error())

	c.SBatch = fakeTool(t, dir, "sbatch2", "echo 'queued'")
	_, err = c.Submit(context.Background(), "job.sbatch")
	assert.EqualError(t, err, "sbatch: unexpected output: queued")

	c.SBatch = filepath.Join(dir, "no-sbatch")
	_, err = c.Submit(context.Background(), "job.sbatch")
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	dir := t.TempDir()
	c := &Client{SCancel: fakeTool(t, dir, "scancel", "exit 0")}

	require.NoError(t, c.Cancel(context.Background(), "42", false))
	assert.Equal(t, "42", readArgs(t, c.SCancel))

	require.NoError(t, c.Cancel(context.Background(), "42", true))
	assert.Equal(t, "--signal=KILL 42", readArgs(t, c.SCancel))

	assert.Error(t, c.Cancel(context.Background(), "", false))
}

func TestState(t *testing.T) {
	dir := t.TempDir()
	c := &Client{SQueue: fakeTool(t, dir, "squeue", "echo RUNNING; echo RUNNING")}

	state, err := c.State(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", state)
	assert.Equal(t, "-h -j 42 -o %T", readArgs(t, c.SQueue))

	c.SQueue = fakeTool(t, dir, "squeue-empty", "exit 0")
	state, err = c.State(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, StateUnknown, state)

	c.SQueue = fakeTool(t, dir, "squeue-purged",
		"echo 'slurm_load_jobs error: Invalid job id specified' >&2; exit 1")
	state, err = c.State(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, StateUnknown, state)

	c.SQueue = fakeTool(t, dir, "squeue-down",
		"echo 'slurm_load_jobs error: Unable to contact slurm controller' >&2; exit 1")
	_, err = c.State(context.Background(), "42")
	assert.EqualError(t, err, "squeue: slurm_load_jobs error: Unable to contact slurm controller")

	_, err = c.State(context.Background(), "")
	assert.Error(t, err)
}

func TestPartitions(t *testing.T) {
	dir := t.TempDir()
	c := &Client{SInfo: fakeTool(t, dir, "sinfo",
		"printf 'normal* up 2-00:00:00 120\\ngpu up 1-00:00:00 8\\n'")}

	parts, err := c.Partitions(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, Partition{Name: "normal", Avail: "up", TimeLimit: "2-00:00:00", Nodes: "120", Default: true}, parts[0])
	assert.Equal(t, "gpu", parts[1].Name)
	assert.False(t, parts[1].Default)
}
