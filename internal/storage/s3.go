package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"crm/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Storage writes attachment objects to an S3 compatible bucket.
type S3Storage struct {
	logger    zerolog.Logger
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage builds a client for cfg. Path-style addressing keeps MinIO and Ceph RGW endpoints working.
func NewS3Storage(logger zerolog.Logger, cfg config.S3Cfg) *S3Storage {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Storage{
		logger:    logger.With().Str("component", "s3-storage").Logger(),
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

// Put uploads body under key and returns the public URL of the object.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Debug().Str("bucket", s.bucket).Str("key", key).Int64("size", size).Msg("stored object")
	return s.ObjectURL(key), nil
}

// ObjectURL joins the public base URL with the escaped key segments.
func (s *S3Storage) ObjectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicURL + "/" + strings.Join(segments, "/")
}
