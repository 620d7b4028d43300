package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Client reads and writes benchmark artifacts in an AWS S3 bucket.
type S3Client struct {
	client     *s3.Client
	bucketName string
	region     string
}

// NewS3Client creates a client for the given region and bucket using the
// default AWS credential chain.
func NewS3Client(region, bucketName string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}

	return &S3Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		region:     region,
	}, nil
}

// ListObjects returns the keys under prefix.
func (s3c *S3Client) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	return listObjects(ctx, s3c.client, s3c.bucketName, prefix)
}

// DownloadObject retrieves a whole object.
func (s3c *S3Client) DownloadObject(ctx context.Context, key string) ([]byte, error) {
	return downloadObject(ctx, s3c.client, s3c.bucketName, key)
}

// UploadObject uploads an object to the bucket.
func (s3c *S3Client) UploadObject(ctx context.Context, key string, data []byte) error {
	return uploadObject(ctx, s3c.client, s3c.bucketName, key, data)
}

// Endpoint returns the S3 endpoint.
func (s3c *S3Client) Endpoint() string {
	return fmt.Sprintf("https://s3.%s.amazonaws.com", s3c.region)
}

func listObjects(ctx context.Context, client *s3.Client, bucket, prefix string) ([]string, error) {
	var keys []string
	var continuation *string
	for {
		out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "listing objects under %s", prefix)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		continuation = out.NextContinuationToken
	}
	return keys, nil
}

func downloadObject(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting object %s", key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading object %s", key)
	}
	return body, nil
}

func uploadObject(ctx context.Context, client *s3.Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return errors.Wrapf(err, "uploading object %s", key)
}
