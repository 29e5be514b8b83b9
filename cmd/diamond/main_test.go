package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestEncryptDecryptInline(t *testing.T) {
	out, err := runCmd(t, "encrypt", "-m", "Hello World", "-rounds", "2", "-seed", "beef")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "grid sizes: "))

	out, err = runCmd(t, "decrypt", "-c", lines[1], "-rounds", "2")
	require.NoError(t, err)
	assert.Equal(t, "HELLOWORLD.\n", out)
}

func TestSealedFileShardJoin(t *testing.T) {
	dir := t.TempDir()
	sealed := filepath.Join(dir, "msg.dmd")
	shards := filepath.Join(dir, "shards")
	rebuilt := filepath.Join(dir, "rebuilt.dmd")

	_, err := runCmd(t, "encrypt", "-m", "attack at dawn", "-rounds", "3", "-out", sealed)
	require.NoError(t, err)

	_, err = runCmd(t, "shard", "-in", sealed, "-dir", shards, "-data", "3", "-parity", "2")
	require.NoError(t, err)

	// lose as many shards as there is parity
	require.NoError(t, os.Remove(filepath.Join(shards, "shard-000.ds")))
	require.NoError(t, os.Remove(filepath.Join(shards, "shard-003.ds")))

	_, err = runCmd(t, "join", "-dir", shards, "-out", rebuilt)
	require.NoError(t, err)

	out, err := runCmd(t, "decrypt", "-in", rebuilt)
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN.\n", out)
}

func TestConfigFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diamond.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cipher:\n  grid_size: 9\n  rounds: 1\n"), 0o600))

	out, err := runCmd(t, "encrypt", "-config", path, "-m", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "grid sizes: [9]")

	out, err = runCmd(t, "encrypt", "-config", path, "-size", "5", "-m", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "grid sizes: [5]")
}

func TestDecryptWarnsWithoutTerminator(t *testing.T) {
	out, err := runCmd(t, "decrypt", "-c", "ABCDEFGHI", "-rounds", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "warning")
}

func TestCommandErrors(t *testing.T) {
	_, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "frobnicate")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "decrypt")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "remote", "upload")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "encrypt", "-m", "no digits 123")
	assert.Error(t, err)

	_, err = runCmd(t, "encrypt", "-m", "hi", "-size", "4")
	assert.Error(t, err)

	_, err = runCmd(t, "decrypt", "-c", "ABC", "-rounds", "0")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	out, err := runCmd(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "usage: diamond")
}
