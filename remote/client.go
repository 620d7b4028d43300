package remote

import "context"

// Client is the subset of object-storage operations the sync layer needs.
// Both the S3 and R2 implementations satisfy it.
type Client interface {
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	DownloadObject(ctx context.Context, key string) ([]byte, error)
	UploadObject(ctx context.Context, key string, data []byte) error
	Endpoint() string
}
