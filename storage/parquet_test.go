package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxybench/report"
)

func TestWriteBatch(t *testing.T) {
	dir := t.TempDir()
	batch := []*report.Result{
		{Name: "caddy", RequestsPerSec: 39000.10, AvgLatencyMs: 2.9},
		{Name: "nginx", RequestsPerSec: 43210.55, AvgLatencyMs: 2.35, TotalRequests: 1300000},
	}

	path, err := WriteBatch(dir, "20240102_000000", batch)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "proxybench-20240102_000000.parquet"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewResultWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	rw, err := NewResultWriter(dir, "")
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	assert.Equal(t, filepath.Join(dir, "proxybench.parquet"), rw.FilePath())
	_, err = os.Stat(rw.FilePath())
	assert.NoError(t, err)
}
