package blob_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/blob"
	"github.com/feral-file/ff-catalog/internal/mocks"
	"github.com/feral-file/ff-catalog/internal/uri"
)

type testSetup struct {
	ctrl      *gomock.Controller
	client    *mocks.MockS3Client
	presigner *mocks.MockS3Presigner
	store     blob.Store
}

func setupTest(t *testing.T) *testSetup {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockS3Client(ctrl)
	presigner := mocks.NewMockS3Presigner(ctrl)
	return &testSetup{
		ctrl:      ctrl,
		client:    client,
		presigner: presigner,
		store:     blob.NewS3Store(client, presigner),
	}
}

func TestS3Store_Get(t *testing.T) {
	t.Run("default region", func(t *testing.T) {
		s := setupTest(t)
		s.client.EXPECT().
			GetObject(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "bucket", aws.ToString(in.Bucket))
				assert.Equal(t, "a/b.png", aws.ToString(in.Key))
				assert.Empty(t, opts)
				return &s3.GetObjectOutput{
					Body:        io.NopCloser(strings.NewReader("png-bytes")),
					ContentType: aws.String("image/png"),
				}, nil
			})

		obj, err := s.store.Get(context.Background(), uri.S3Locator{Bucket: "bucket", Key: "a/b.png"})
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), obj.Body)
		assert.Equal(t, "image/png", obj.ContentType)
	})

	t.Run("explicit region overrides client region", func(t *testing.T) {
		s := setupTest(t)
		s.client.EXPECT().
			GetObject(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				require.Len(t, opts, 1)
				o := s3.Options{Region: "us-east-1"}
				opts[0](&o)
				assert.Equal(t, "eu-west-1", o.Region)
				return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(""))}, nil
			})

		obj, err := s.store.Get(context.Background(), uri.S3Locator{Bucket: "b", Key: "k", Region: "eu-west-1"})
		require.NoError(t, err)
		assert.Empty(t, obj.ContentType)
	})

	t.Run("fetch error", func(t *testing.T) {
		s := setupTest(t)
		s.client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("NoSuchKey"))

		_, err := s.store.Get(context.Background(), uri.S3Locator{Bucket: "b", Key: "k"})
		assert.ErrorContains(t, err, "NoSuchKey")
	})
}

func TestS3Store_Put(t *testing.T) {
	s := setupTest(t)
	s.client.EXPECT().
		PutObject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "meta", aws.ToString(in.Bucket))
			assert.Equal(t, "application/json", aws.ToString(in.ContentType))
			body, err := io.ReadAll(in.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"x"}`, string(body))
			return &s3.PutObjectOutput{}, nil
		})

	require.NoError(t, s.store.Put(context.Background(), "meta", "0xc/col/1.json", "application/json", []byte(`{"name":"x"}`)))
}

func TestS3Store_PresignPut(t *testing.T) {
	s := setupTest(t)
	s.presigner.EXPECT().
		PresignPutObject(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *s3.PutObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			assert.Equal(t, "uploads", aws.ToString(in.Bucket))
			assert.Equal(t, "u1/image/a1.png", aws.ToString(in.Key))
			var o s3.PresignOptions
			opts[0](&o)
			assert.Equal(t, 15*time.Minute, o.Expires)
			return &v4.PresignedHTTPRequest{URL: "https://uploads.s3.amazonaws.com/u1/image/a1.png?sig"}, nil
		})

	url, err := s.store.PresignPut(context.Background(), "uploads", "u1/image/a1.png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "u1/image/a1.png")
}
