// Package s3 implements photostore.Store on an S3-compatible backend
// (AWS S3 or MinIO). Single bucket; photo keys map to object keys.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"livemusicnotes/internal/photostore"
)

// Config holds explicit construction parameters.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional, enables a custom endpoint (e.g. MinIO)
	PathStyle bool
	// PublicBaseURL is prefixed to keys when building photo URLs.
	PublicBaseURL string
}

// Store implements photostore.Store against one bucket.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ photostore.Store = (*Store)(nil)

// New creates an S3 photo store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return &Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Save uploads the photo bytes.
func (s *Store) Save(ctx context.Context, key, contentType string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put photo object: %w", err)
	}
	return nil
}

// Open downloads the stored bytes.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, photostore.ErrNotFound
		}
		return nil, fmt.Errorf("get photo object: %w", err)
	}
	return out.Body, nil
}

// Remove deletes the object; S3 deletes are idempotent already.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return fmt.Errorf("delete photo object: %w", err)
	}
	return nil
}

// URL returns the public object URL.
func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}
