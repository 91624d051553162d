package s3

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"Photostream/internal/core/blobs"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	uploadExpiry   = 15 * time.Minute
	downloadExpiry = 24 * time.Hour
	keyPrefix      = "images/"
)

// Client is the subset of the minio client the gateway uses.
// Declared as an interface so tests can substitute a fake.
type Client interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type s3Gateway struct {
	client Client
	bucket string
}

// NewGateway creates a blob gateway backed by an S3-compatible object store
func NewGateway(endpoint, accessKey, secretKey, bucket string, useSSL bool) (blobs.Gateway, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &s3Gateway{client: client, bucket: bucket}, nil
}

// NewGatewayWithClient creates a gateway over an existing client. Used in tests.
func NewGatewayWithClient(client Client, bucket string) blobs.Gateway {
	return &s3Gateway{client: client, bucket: bucket}
}

// IssueUploadTarget returns a presigned PUT URL for a fresh object key.
// The client uploads the image binary directly to the URL and then references
// the key when creating a post.
func (g *s3Gateway) IssueUploadTarget(ctx context.Context) (*blobs.UploadTarget, error) {
	key := keyPrefix + uuid.NewString()

	presignedURL, err := g.client.PresignedPutObject(ctx, g.bucket, key, uploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload URL: %w", err)
	}

	return &blobs.UploadTarget{
		Key:       key,
		URL:       presignedURL.String(),
		ExpiresAt: time.Now().Add(uploadExpiry),
	}, nil
}

// Resolve returns a presigned GET URL for a stored blob, or ErrBlobNotFound
// if the object does not exist
func (g *s3Gateway) Resolve(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", blobs.ErrBlobNotFound
	}

	// Existence check: a presigned URL can be generated for any key, so stat
	// first to distinguish a dangling reference from a stored blob
	_, err := g.client.StatObject(ctx, g.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
			return "", blobs.ErrBlobNotFound
		}
		return "", fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	presignedURL, err := g.client.PresignedGetObject(ctx, g.bucket, key, downloadExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}

	return presignedURL.String(), nil
}

// Remove deletes a stored blob
func (g *s3Gateway) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}

	return nil
}
