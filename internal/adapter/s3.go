package adapter

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client defines the subset of the S3 API used for blob access
//
//go:generate mockgen -source=s3.go -destination=../mocks/s3.go -package=mocks -mock_names=S3Client=MockS3Client,S3Presigner=MockS3Presigner
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Presigner defines presigned URL generation for uploads
type S3Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// NewS3Client creates an S3 client and a presigner sharing the same options.
// A non-empty endpoint switches to path-style addressing against it.
func NewS3Client(cfg aws.Config, endpoint string) (S3Client, S3Presigner) {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return client, s3.NewPresignClient(client)
}

// WithPresignExpiry sets the validity window of a presigned request
func WithPresignExpiry(ttl time.Duration) func(*s3.PresignOptions) {
	return s3.WithPresignExpires(ttl)
}
