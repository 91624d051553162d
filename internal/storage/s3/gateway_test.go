package s3

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"Photostream/internal/core/blobs"

	"github.com/minio/minio-go/v7"
)

// fakeClient implements Client over an in-memory key set
type fakeClient struct {
	objects map[string]bool
	removed []string
}

func newFakeClient(keys ...string) *fakeClient {
	c := &fakeClient{objects: make(map[string]bool)}
	for _, k := range keys {
		c.objects[k] = true
	}
	return c
}

func (c *fakeClient) PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error) {
	return url.Parse("https://store.local/" + bucketName + "/" + objectName + "?sig=put")
}

func (c *fakeClient) PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error) {
	return url.Parse("https://store.local/" + bucketName + "/" + objectName + "?sig=get")
}

func (c *fakeClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if !c.objects[objectName] {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return minio.ObjectInfo{Key: objectName}, nil
}

func (c *fakeClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	c.removed = append(c.removed, objectName)
	delete(c.objects, objectName)
	return nil
}

func TestIssueUploadTarget(t *testing.T) {
	client := newFakeClient()
	gateway := NewGatewayWithClient(client, "photos")

	target, err := gateway.IssueUploadTarget(context.Background())
	if err != nil {
		t.Fatalf("IssueUploadTarget failed: %v", err)
	}

	if !strings.HasPrefix(target.Key, keyPrefix) {
		t.Errorf("Expected key prefixed with %q, got %q", keyPrefix, target.Key)
	}
	if !strings.Contains(target.URL, target.Key) {
		t.Errorf("Expected URL to reference the key, got %q", target.URL)
	}
	if !target.ExpiresAt.After(time.Now()) {
		t.Error("Expected expiry in the future")
	}
}

func TestResolve_ExistingObject(t *testing.T) {
	client := newFakeClient("images/abc")
	gateway := NewGatewayWithClient(client, "photos")

	resolved, err := gateway.Resolve(context.Background(), "images/abc")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved == "" {
		t.Fatal("Expected a URL for an existing object")
	}
	if !strings.Contains(resolved, "images/abc") {
		t.Errorf("Expected URL to reference the key, got %q", resolved)
	}
}

func TestResolve_MissingObject(t *testing.T) {
	client := newFakeClient()
	gateway := NewGatewayWithClient(client, "photos")

	_, err := gateway.Resolve(context.Background(), "images/never-uploaded")
	if !errors.Is(err, blobs.ErrBlobNotFound) {
		t.Errorf("Expected ErrBlobNotFound for a missing object, got %v", err)
	}
}

func TestResolve_EmptyKey(t *testing.T) {
	gateway := NewGatewayWithClient(newFakeClient(), "photos")

	_, err := gateway.Resolve(context.Background(), "")
	if !errors.Is(err, blobs.ErrBlobNotFound) {
		t.Errorf("Expected ErrBlobNotFound for an empty key, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	client := newFakeClient("images/abc")
	gateway := NewGatewayWithClient(client, "photos")
	ctx := context.Background()

	if err := gateway.Remove(ctx, "images/abc"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(client.removed) != 1 || client.removed[0] != "images/abc" {
		t.Errorf("Expected images/abc removed, got %v", client.removed)
	}

	// The removed object no longer resolves
	_, err := gateway.Resolve(ctx, "images/abc")
	if !errors.Is(err, blobs.ErrBlobNotFound) {
		t.Errorf("Expected ErrBlobNotFound after removal, got %v", err)
	}
}

// statErrClient fails stat with a non-NotFound error
type statErrClient struct {
	fakeClient
}

func (c *statErrClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return minio.ObjectInfo{}, errors.New("connection refused")
}

func TestResolve_StatFailure(t *testing.T) {
	gateway := NewGatewayWithClient(&statErrClient{}, "photos")

	_, err := gateway.Resolve(context.Background(), "images/abc")
	if err == nil {
		t.Fatal("Expected an error when the store is unreachable")
	}
}
