package blobs

import (
	"context"
	"errors"
	"time"
)

// ErrBlobNotFound indicates the referenced object does not exist in storage
var ErrBlobNotFound = errors.New("blob not found")

// UploadTarget is a presigned destination for a direct binary upload.
// The client PUTs the image to URL out-of-band and then references it by Key.
type UploadTarget struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
}

// Gateway abstracts the object store holding image blobs.
// Implemented by internal/storage/s3; services consume it, never the store
// client directly.
type Gateway interface {
	// IssueUploadTarget returns a presigned PUT URL and the key the uploaded
	// object will be stored under
	IssueUploadTarget(ctx context.Context) (*UploadTarget, error)

	// Resolve returns a retrievable URL for a stored blob key.
	// Returns ErrBlobNotFound if no such object exists.
	Resolve(ctx context.Context, key string) (string, error)

	// Remove deletes a stored blob. Removal is best-effort for callers:
	// an orphaned blob is preferable to a failed post deletion.
	Remove(ctx context.Context, key string) error
}
