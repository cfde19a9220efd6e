package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory(t *testing.T) {
	cwd := t.TempDir()
	p := ResolveParams(envMap(nil), cwd)

	arts := Inventory(p)
	require.Len(t, arts, 6)
	assert.Equal(t, filepath.Join(cwd, "sypiv_output", "pair1_1.npy"), arts[0].Path)
	assert.Equal(t, filepath.Join(cwd, "sypiv_output", "pair3_2.npy"), arts[5].Path)
	assert.False(t, Complete(arts))

	_, err := os.Stat(p.OutDir)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.MkdirAll(p.OutDir, 0755))
	for _, a := range arts {
		require.NoError(t, os.WriteFile(a.Path, []byte("npy"), 0644))
	}
	arts = Inventory(p)
	assert.True(t, Complete(arts))
	assert.Equal(t, int64(3), arts[2].Size)
}

func TestGetenv(t *testing.T) {
	get := envMap(map[string]string{"SET": "v", "EMPTY": ""})
	assert.Equal(t, "v", Getenv(get, "SET", "d"))
	assert.Equal(t, "d", Getenv(get, "EMPTY", "d"))
	assert.Equal(t, "d", Getenv(get, "UNSET", "d"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(dir), "missing .env is not an error")

	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFilename),
		[]byte("SYPIV_TEST_DOTENV=/from/file\nSYPIV_TEST_KEEP=/from/file\n"), 0644))
	t.Setenv("SYPIV_TEST_KEEP", "/from/env")
	t.Cleanup(func() { os.Unsetenv("SYPIV_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "/from/file", os.Getenv("SYPIV_TEST_DOTENV"))
	assert.Equal(t, "/from/env", os.Getenv("SYPIV_TEST_KEEP"))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, [][]string{{"ID", "STATE"}, {"12", "RUNNING"}}, true)
	assert.Equal(t, "ID  STATE\n--  -----\n12  RUNNING\n", buf.String())
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 7", (&ExitError{Code: 7}).Error())
}
