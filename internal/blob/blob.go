package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/uri"
)

// Object is a fetched blob
type Object struct {
	Body        []byte
	ContentType string
}

// Store reads and writes objects in blob storage
//
//go:generate mockgen -source=blob.go -destination=../mocks/blob.go -package=mocks -mock_names=Store=MockBlobStore
type Store interface {
	// Get fetches the object at loc. A non-empty loc.Region targets that region.
	Get(ctx context.Context, loc uri.S3Locator) (*Object, error)
	// Put writes body to bucket/key
	Put(ctx context.Context, bucket, key, contentType string, body []byte) error
	// PresignPut returns a URL that allows a client to upload bucket/key until ttl elapses
	PresignPut(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

type s3Store struct {
	client    adapter.S3Client
	presigner adapter.S3Presigner
}

// NewS3Store creates a blob store backed by S3
func NewS3Store(client adapter.S3Client, presigner adapter.S3Presigner) Store {
	return &s3Store{client: client, presigner: presigner}
}

func (s *s3Store) Get(ctx context.Context, loc uri.S3Locator) (*Object, error) {
	var opts []func(*s3.Options)
	if loc.Region != "" {
		region := loc.Region
		opts = append(opts, func(o *s3.Options) {
			o.Region = region
		})
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "failed to close object body", zap.Error(err), zap.String("key", loc.Key))
		}
	}()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}

	return &Object{
		Body:        body,
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

func (s *s3Store) Put(ctx context.Context, bucket, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *s3Store) PresignPut(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, adapter.WithPresignExpiry(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign s3://%s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}
