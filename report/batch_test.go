package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchID(t *testing.T) {
	assert.Equal(t, "20240102_000000", BatchID("results/nginx_fibonacci_20240102_000000.txt"))
	assert.Equal(t, "", BatchID("results/nginx_fibonacci.txt"))
	assert.Equal(t, "", BatchID("results/nginx_20240102_000000_metrics.csv"))
}

func TestSelectBatchLatestWins(t *testing.T) {
	files := []string{
		"results/nginx_fibonacci_20240101_000000.txt",
		"results/caddy_fibonacci_20240101_000000.txt",
		"results/nginx_fibonacci_20240102_000000.txt",
		"results/caddy_fibonacci_20240102_000000.txt",
	}

	got := SelectBatch(files, "")
	assert.ElementsMatch(t, []string{
		"results/nginx_fibonacci_20240102_000000.txt",
		"results/caddy_fibonacci_20240102_000000.txt",
	}, got)
}

func TestSelectBatchExplicitID(t *testing.T) {
	files := []string{
		"results/nginx_fibonacci_20240101_000000.txt",
		"results/nginx_fibonacci_20240102_000000.txt",
		"results/haproxy_adhoc.txt",
	}

	got := SelectBatch(files, "20240101_000000")
	assert.Equal(t, []string{"results/nginx_fibonacci_20240101_000000.txt"}, got)
}

func TestSelectBatchKeepsUnsuffixedFiles(t *testing.T) {
	files := []string{
		"results/nginx_fibonacci_20240102_000000.txt",
		"results/nginx_fibonacci_20240101_000000.txt",
		"results/haproxy_adhoc.txt",
	}

	got := SelectBatch(files, "")
	assert.ElementsMatch(t, []string{
		"results/nginx_fibonacci_20240102_000000.txt",
		"results/haproxy_adhoc.txt",
	}, got)
}

func TestSelectBatchNoSuffixesAnywhere(t *testing.T) {
	files := []string{"results/a.txt", "results/b.txt"}
	assert.Equal(t, files, SelectBatch(files, ""))
}

func TestLoadBatchEmpty(t *testing.T) {
	_, err := LoadBatch(nil)
	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestLoadBatchAllUnreadable(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadBatch([]string{filepath.Join(dir, "ghost_20240101_000000.txt")})
	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestLoadBatchSortsBySubjectName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"traefik", "caddy", "nginx"} {
		path := filepath.Join(dir, name+"_fibonacci_20240102_000000.txt")
		require.NoError(t, os.WriteFile(path, []byte("Requests/sec:  100.00\n"), 0o644))
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	require.NoError(t, err)

	results, err := LoadBatch(files)
	require.NoError(t, err)
	require.Len(t, results, 3)

	names := []string{results[0].Name, results[1].Name, results[2].Name}
	assert.Equal(t, []string{"caddy", "nginx", "traefik"}, names)
}

func TestLoadBatchSkipsUnreadableAndContinues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "nginx_fibonacci_20240102_000000.txt")
	require.NoError(t, os.WriteFile(good, []byte("Requests/sec:  100.00\n"), 0o644))
	missing := filepath.Join(dir, "caddy_fibonacci_20240102_000000.txt")

	results, err := LoadBatch([]string{missing, good})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "nginx", results[0].Name)
}
