package storage

import (
	"bytes"
	"context"
	"log"
	"time"

	appconfig "preproc-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver uploads exported manifests to S3-compatible object storage.
// A nil Archiver is valid and drops every upload, so the export path
// works without any archive configuration.
type Archiver struct {
	client *s3.Client
	bucket string
}

func NewArchiver(cfg *appconfig.Config) *Archiver {
	if !cfg.Archive.Enabled {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure client, archiving disabled: %v", err)
		return nil
	}

	endpoint := cfg.Archive.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &Archiver{client: client, bucket: cfg.Archive.Bucket}
}

// Upload stores one manifest. Failures are logged and swallowed; archiving
// never blocks or fails the export that produced the file.
func (a *Archiver) Upload(key string, data []byte, contentType string) {
	if a == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[Archive] Failed to upload %s: %v", key, err)
		return
	}
	log.Printf("[Archive] Uploaded %s (%d bytes)", key, len(data))
}
