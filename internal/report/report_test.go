package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/simulator"
	"github.com/lox/crapsforbots/internal/statistics"
)

func sampleReport() Report {
	stats := &statistics.Statistics{}
	stats.Add(statistics.SessionResult{Net: 30, Rolls: 12, Wagered: 60})
	stats.Add(statistics.SessionResult{Net: -70, Rolls: 40, Wagered: 140})

	cfg := simulator.Config{MaxRolls: 100, Bankroll: 200, Seed: 9, Table: craps.DefaultConfig()}
	res := &simulator.Result{Strategy: "pass-odds", Stats: stats, Elapsed: 1500 * time.Millisecond}
	return New(cfg, res)
}

func TestNew(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "pass-odds", r.Strategy)
	assert.Equal(t, 2, r.Sessions)
	assert.Equal(t, int64(9), r.Seed)
	assert.InDelta(t, -20.0, r.MeanNet, 1e-9)
	assert.Equal(t, 200, r.Wagered)
	assert.InDelta(t, 0.2, r.HouseEdge, 1e-9)
	assert.InDelta(t, 26.0, r.MeanRolls, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, r.Elapsed())
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	want := sampleReport()
	require.NoError(t, Write(path, want))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	first := sampleReport()
	require.NoError(t, Write(path, first))

	second := first
	second.Strategy = "iron-cross"
	require.NoError(t, Write(path, second))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "iron-cross", got.Strategy)
}

func TestWriteMissingDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "report.json"), sampleReport())
	assert.Error(t, err)
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Read(path)
	assert.Error(t, err)
}
