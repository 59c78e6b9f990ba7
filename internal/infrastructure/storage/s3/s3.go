// Package s3 stores verification uploads in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/movieplatform/movie-api/internal/core/ports"
)

type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint targets an S3-compatible service such as MinIO. Empty means AWS.
	Endpoint string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Storage struct {
	client   putObjectAPI
	bucket   string
	region   string
	endpoint string
	newKey   func() string
}

func NewStorage(ctx context.Context, cfg Config) (*Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newStorage(client, cfg), nil
}

func newStorage(client putObjectAPI, cfg Config) *Storage {
	return &Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		newKey:   func() string { return uuid.New().String() },
	}
}

// Upload stores the file under <kind>/<uuid><ext> and returns its URL.
func (s *Storage) Upload(ctx context.Context, f ports.Upload) (string, error) {
	body, ok := f.Body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f.Body)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	kind := f.Kind
	if kind == "" {
		kind = ports.UploadDocument
	}
	key := fmt.Sprintf("%s/%s%s", kind, s.newKey(), strings.ToLower(filepath.Ext(f.Filename)))

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if f.ContentType != "" {
		in.ContentType = aws.String(f.ContentType)
	}
	if f.Size > 0 {
		in.ContentLength = aws.Int64(f.Size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *Storage) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
