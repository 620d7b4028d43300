package remote

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// R2Client reads and writes benchmark artifacts in a Cloudflare R2 bucket
// through its S3-compatible API.
type R2Client struct {
	client     *s3.Client
	bucketName string
	endpoint   string
}

// NewR2Client creates a client for an R2 bucket. R2 endpoints have the form
// https://<ACCOUNT_ID>.r2.cloudflarestorage.com and use the "auto" region.
func NewR2Client(accountID, accessKeyID, secretAccessKey, bucketName string) (*R2Client, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "loading R2 config")
	}

	return &R2Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// ListObjects returns the keys under prefix.
func (r2 *R2Client) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	return listObjects(ctx, r2.client, r2.bucketName, prefix)
}

// DownloadObject retrieves a whole object.
func (r2 *R2Client) DownloadObject(ctx context.Context, key string) ([]byte, error) {
	return downloadObject(ctx, r2.client, r2.bucketName, key)
}

// UploadObject uploads an object to the bucket.
func (r2 *R2Client) UploadObject(ctx context.Context, key string, data []byte) error {
	return uploadObject(ctx, r2.client, r2.bucketName, key, data)
}

// Endpoint returns the R2 endpoint.
func (r2 *R2Client) Endpoint() string {
	return r2.endpoint
}
