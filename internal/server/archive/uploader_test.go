package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func testUploader() *Uploader {
	return NewUploader(UploaderConfig{
		RootUser:     "minioadmin",
		RootPassword: "minioadmin",
		Bucket:       "upcheck-logs",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
	})
}

func TestUploader_Enabled(t *testing.T) {
	if NewUploader(UploaderConfig{}).Enabled() {
		t.Fatalf("uploader without bucket should be disabled")
	}
	if !testUploader().Enabled() {
		t.Fatalf("uploader with bucket should be enabled")
	}
}

func TestUploader_Upload(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		putObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	var capturedBucket, capturedKey, capturedBody string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		capturedBucket = aws.ToString(in.Bucket)
		capturedKey = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		capturedBody = string(b)
		return &s3.PutObjectOutput{}, nil
	}

	u := testUploader()
	err := u.Upload(context.Background(), "logs/2026/1/2/access.log.gz", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if capturedBaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("base endpoint: %q", capturedBaseEndpoint)
	}
	if capturedBucket != "upcheck-logs" || capturedKey != "logs/2026/1/2/access.log.gz" {
		t.Fatalf("bucket/key: %q %q", capturedBucket, capturedKey)
	}
	if capturedBody != "payload" {
		t.Fatalf("body: %q", capturedBody)
	}
}

func TestUploader_Upload_PutError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		putObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("boom")
	}

	err := testUploader().Upload(context.Background(), "k", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped put error, got %v", err)
	}
}

func TestUploader_Upload_ConfigError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	err := testUploader().Upload(context.Background(), "k", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "no creds") {
		t.Fatalf("expected wrapped config error, got %v", err)
	}
}
