package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theflywheel/fixmap"
)

// runCmd executes fixmapctl with args and returns what it printed.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCountCommand(t *testing.T) {
	want := "'e': 1\n'h': 1\n'l': 2\n'o': 1\n"
	tests := []struct {
		name string
		args []string
	}{
		{"by value", []string{"count", "hello"}},
		{"by ref", []string{"count", "--by-ref", "hello"}},
		{"xxhash", []string{"--hash", "xxhash", "count", "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestCountCommandJSON(t *testing.T) {
	out, err := runCmd(t, "--json", "count", "many", "letters")
	require.NoError(t, err)

	var counts map[string]uint32
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Equal(t, uint32(2), counts["t"])
	assert.Equal(t, uint32(2), counts["e"])
	assert.Equal(t, uint32(1), counts[" "])
	assert.Len(t, counts, 10)
}

func TestPeopleCommand(t *testing.T) {
	out, err := runCmd(t, "people", "--n", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "scoped variable 10: person"))
	assert.Equal(t, 3, strings.Count(out, "exported person"))
	assert.Equal(t, 9, strings.Count(out, "\n"))

	out, err = runCmd(t, "--json", "people", "--n", "4", "--seed", "7")
	require.NoError(t, err)
	var people []person
	require.NoError(t, json.Unmarshal([]byte(out), &people))
	require.Len(t, people, 4)
	ids := map[int32]bool{}
	for _, p := range people {
		ids[p.ID] = true
		assert.Less(t, p.Age, uint32(50))
		assert.Less(t, p.Siblings, uint32(3))
	}
	assert.Len(t, ids, 4)
}

func TestNamesCommand(t *testing.T) {
	out, err := runCmd(t, "names")
	require.NoError(t, err)
	assert.Contains(t, out, `second reference to "ics53": Not found`)
	assert.Contains(t, out, `second reference to "Brian": Success, value 42, entries 1`)

	out, err = runCmd(t, "--json", "names")
	require.NoError(t, err)
	var res namesResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, namesResult{
		IdentityStatus: "Not found",
		ResolvedStatus: "Success",
		ResolvedValue:  42,
		ResolvedLen:    1,
	}, res)
}

func TestFillCommand(t *testing.T) {
	out, err := runCmd(t, "--json", "fill", "--n", "200", "--remove", "20")
	require.NoError(t, err)

	var res fillResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 200, res.Inserted)
	assert.Equal(t, 180, res.Len)
	assert.Equal(t, 20, res.Tombstones)
	assert.Greater(t, res.Resizes, 0)
	assert.LessOrEqual(t, res.Len*100/res.Cap, 33)

	_, err = runCmd(t, "fill", "--n", "1", "--remove", "2")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, `
[map]
initial_capacity = 101
load_factor = 50
hash = "xxhash"
`)
	out, err := runCmd(t, "--config", path, "--json", "fill", "--n", "50")
	require.NoError(t, err)
	var res fillResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 101, res.Cap)
	assert.Equal(t, 0, res.Resizes)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(101), cfg.InitialCapacity)
	assert.Equal(t, uint32(50), cfg.LoadFactor)
	assert.Equal(t, fixmap.HashXXHash, cfg.Hash)
}

func TestConfigFileErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "[map]\nload_factr = 40\n")
		_, err := runCmd(t, "--config", path, "count", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "map.load_factr")
	})

	t.Run("memory limit", func(t *testing.T) {
		path := writeConfig(t, "[map]\nmemory_limit = 2048\n")
		_, err := runCmd(t, "--config", path, "fill", "--n", "100")
		assert.ErrorIs(t, err, fixmap.ErrNoMemory)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "names")
		assert.Error(t, err)
	})

	t.Run("bad hash flag", func(t *testing.T) {
		_, err := runCmd(t, "--hash", "md5", "count", "x")
		assert.ErrorIs(t, err, fixmap.ErrInvalidConfig)
	})
}
