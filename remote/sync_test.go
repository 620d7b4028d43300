package remote

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	objects map[string][]byte
}

func (f *fakeClient) ListObjects(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeClient) DownloadObject(_ context.Context, key string) ([]byte, error) {
	return f.objects[key], nil
}

func (f *fakeClient) UploadObject(_ context.Context, key string, data []byte) error {
	f.objects[key] = data
	return nil
}

func (f *fakeClient) Endpoint() string { return "fake" }

func TestSyncFetchesResultFilesOnly(t *testing.T) {
	c := &fakeClient{objects: map[string][]byte{
		"results/nginx_fibonacci_20240102_000000.txt":         []byte("Requests/sec:  100.00\n"),
		"results/nginx_fibonacci_20240102_000000_metrics.csv": []byte("timestamp,cpu_percent,memory_mb\n"),
		"results/charts/throughput.png":                       []byte{0x89, 0x50},
	}}

	dir := t.TempDir()
	n, err := Sync(context.Background(), c, "results/", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = os.Stat(filepath.Join(dir, "nginx_fibonacci_20240102_000000.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "nginx_fibonacci_20240102_000000_metrics.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "throughput.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadArtifacts(t *testing.T) {
	c := &fakeClient{objects: map[string][]byte{}}

	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	require.NoError(t, UploadArtifacts(context.Background(), c, "charts", []string{path}))
	assert.Equal(t, []byte("{}"), c.objects["charts/dashboard.json"])
}

func TestIsR2Endpoint(t *testing.T) {
	assert.True(t, IsR2Endpoint("https://abc123.r2.cloudflarestorage.com"))
	assert.False(t, IsR2Endpoint("https://s3.eu-central-1.amazonaws.com"))
}
