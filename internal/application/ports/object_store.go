package ports

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

type (
	Object struct {
		Body        io.ReadCloser
		ContentType string
		// Size is -1 when the store did not report it.
		Size int64
	}

	// ObjectStore keeps binary blobs under caller-chosen opaque keys.
	ObjectStore interface {
		Put(ctx context.Context, key string, data []byte, contentType string) error
		Get(ctx context.Context, key string) (*Object, error)
		Delete(ctx context.Context, key string) error
	}
)
