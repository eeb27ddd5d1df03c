package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures the S3-backed object store. Endpoint and CDNDomain
// are optional; Endpoint supports S3-compatible stores (MinIO, R2).
type S3Config struct {
	Region    string
	Bucket    string
	Prefix    string
	Endpoint  string
	CDNDomain string
	AccessKey string
	SecretKey string
}

// S3ObjectStore stores product images under a per-style-code key
type S3ObjectStore struct {
	client    *s3.Client
	bucket    string
	prefix    string
	endpoint  string
	cdnDomain string
}

var _ ObjectStore = (*S3ObjectStore)(nil)

// NewS3ObjectStore builds an S3 client from the default credential chain,
// or from static keys when provided.
func NewS3ObjectStore(ctx context.Context, cfg S3Config) (*S3ObjectStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ObjectStore{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		cdnDomain: strings.TrimRight(cfg.CDNDomain, "/"),
	}, nil
}

// UploadImage writes the blob to products/{styleCode}/main.{ext} and
// returns its public URL. The key depends only on the style code and the
// MIME-derived extension, so re-imports overwrite in place.
func (s *S3ObjectStore) UploadImage(ctx context.Context, styleCode string, data []byte, contentType string) (string, error) {
	key := s.objectKey(styleCode, contentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image for style %s: %w", styleCode, err)
	}

	return s.publicURL(key), nil
}

func (s *S3ObjectStore) objectKey(styleCode, contentType string) string {
	name := fmt.Sprintf("products/%s/main.%s", sanitizeStyleCode(styleCode), extensionForMIME(contentType))
	if s.prefix != "" {
		return s.prefix + "/" + name
	}
	return name
}

func (s *S3ObjectStore) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// sanitizeStyleCode keeps object keys inside the fixed storage-path
// template; row values never contribute path separators.
func sanitizeStyleCode(styleCode string) string {
	var b strings.Builder
	for _, r := range styleCode {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	clean := b.String()
	// A dots-only code would survive as a relative path segment
	if strings.Trim(clean, ".") == "" {
		return "unknown"
	}
	return clean
}
