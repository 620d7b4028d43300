package remote

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// IsR2Endpoint reports whether a storage URL points at Cloudflare R2.
func IsR2Endpoint(url string) bool {
	return strings.Contains(url, "r2.cloudflarestorage.com")
}

// Sync downloads every benchmark result object under prefix into destDir,
// flattening keys to their base names. Only wrk reports (.txt) and paired
// metrics logs (.csv) are fetched. Returns the number of files written.
func Sync(ctx context.Context, c Client, prefix, destDir string) (int, error) {
	keys, err := c.ListObjects(ctx, prefix)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, errors.Wrap(err, "creating destination directory")
	}

	n := 0
	for _, key := range keys {
		if !strings.HasSuffix(key, ".txt") && !strings.HasSuffix(key, ".csv") {
			log.Debugf("ignoring object %s", key)
			continue
		}

		data, err := c.DownloadObject(ctx, key)
		if err != nil {
			return n, err
		}

		dest := filepath.Join(destDir, filepath.Base(key))
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return n, errors.Wrapf(err, "writing %s", dest)
		}
		log.Infof("fetched %s", dest)
		n++
	}

	return n, nil
}

// UploadArtifacts pushes generated analysis outputs (dashboard JSON, parquet
// archive) back to the bucket under prefix.
func UploadArtifacts(ctx context.Context, c Client, prefix string, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading artifact %s", path)
		}
		key := prefix + "/" + filepath.Base(path)
		if err := c.UploadObject(ctx, key, data); err != nil {
			return err
		}
		log.Infof("uploaded %s to %s", path, key)
	}
	return nil
}
