package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proxybench/remote"
)

var (
	storeURL    string
	storeBucket string
	storePrefix string
	storeRegion string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download raw benchmark results from object storage",
	Long: `Downloads the wrk reports and metrics logs a benchmark run uploaded to an
S3 or Cloudflare R2 bucket into the local results directory. R2 credentials
come from R2_ACCOUNT_ID, R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY.`,
	RunE: runFetch,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload generated analysis artifacts to object storage",
	RunE:  runPush,
}

func init() {
	for _, c := range []*cobra.Command{fetchCmd, pushCmd} {
		c.Flags().StringVar(&storeURL, "url", "", "Storage endpoint URL (r2 or s3)")
		c.Flags().StringVar(&storeBucket, "bucket", "", "Bucket name")
		c.Flags().StringVar(&storePrefix, "prefix", "results", "Object key prefix")
		c.Flags().StringVar(&storeRegion, "region", "us-east-1", "AWS region (s3 only)")
		c.MarkFlagRequired("url")
		c.MarkFlagRequired("bucket")
	}
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pushCmd)
}

func newRemoteClient() (remote.Client, error) {
	if remote.IsR2Endpoint(storeURL) {
		accountID := os.Getenv("R2_ACCOUNT_ID")
		accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
		secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")
		if accountID == "" || accessKeyID == "" || secretAccessKey == "" {
			return nil, errors.New("R2 credentials not found in environment variables")
		}
		return remote.NewR2Client(accountID, accessKeyID, secretAccessKey, storeBucket)
	}
	return remote.NewS3Client(storeRegion, storeBucket)
}

func runFetch(cmd *cobra.Command, args []string) error {
	client, err := newRemoteClient()
	if err != nil {
		return err
	}

	n, err := remote.Sync(context.Background(), client, storePrefix, resultsDir)
	if err != nil {
		return err
	}
	log.Infof("fetched %d result files from %s", n, client.Endpoint())
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	client, err := newRemoteClient()
	if err != nil {
		return err
	}

	artifacts, err := filepath.Glob(filepath.Join(outputDir, "*"))
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return errors.Errorf("no artifacts under %s, run analyze first", outputDir)
	}

	return remote.UploadArtifacts(context.Background(), client, storePrefix, artifacts)
}
