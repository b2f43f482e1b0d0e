// Package storage provides the S3 implementation of the upload endpoint
// used for event images. The bucket serves objects publicly; the returned
// URL is the stable reference stored on the event document.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// S3Config holds the bucket identity and credentials. All values come from
// app configuration; when Bucket is empty the feature is disabled and
// Enabled() reports false.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether enough configuration is present to upload.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// S3 uploads binary payloads to a public-read bucket. It satisfies
// uploader.Endpoint.
type S3 struct {
	uploader *manager.Uploader
	cfg      S3Config
	log      *zap.Logger
}

// NewS3 builds the S3 endpoint. Static credentials from config take
// precedence; otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	} else {
		logger.Warn("S3 endpoint using default credential chain")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3{
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		log:      logger,
	}, nil
}

// Put streams body to the bucket under prefix+key and returns the public
// object URL.
func (s *S3) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	fullKey := s.cfg.Prefix + key
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, fullKey), nil
}
