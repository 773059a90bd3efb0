// Package archive rotates the access log into gzip archives and, when an
// S3-compatible bucket is configured, ships the archives off the host.
package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// UploaderConfig carries the object storage settings. An empty Bucket
// disables uploads.
type UploaderConfig struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

type Uploader struct {
	config UploaderConfig
}

func NewUploader(config UploaderConfig) *Uploader {
	return &Uploader{config: config}
}

// Enabled reports whether a destination bucket is configured.
func (u *Uploader) Enabled() bool {
	return u.config.Bucket != ""
}

func (u *Uploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(u.config.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.RootUser,     // MINIO_ROOT_USER
			u.config.RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.BaseEndpoint)
	}), nil
}

// Upload stores body under key in the configured bucket.
func (u *Uploader) Upload(ctx context.Context, key string, body io.Reader) error {
	client, err := u.getClient(ctx)
	if err != nil {
		return fmt.Errorf("creating s3 client: %w", err)
	}
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.config.Bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
