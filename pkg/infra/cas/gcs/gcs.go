// Package gcs is a Cloud Storage backend for the content store.
package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/cas"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Backend struct {
	client *storage.Client
	bucket types.GCSBucket
	prefix string
}

var _ cas.Backend = (*Backend)(nil)

func New(ctx context.Context, bucket types.GCSBucket, prefix string, options ...option.ClientOption) (*Backend, error) {
	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", bucket))
	}

	return &Backend{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (x *Backend) Close() error {
	return x.client.Close()
}

func (x *Backend) object(key string) *storage.ObjectHandle {
	return x.client.Bucket(x.bucket.String()).Object(path.Join(x.prefix, key))
}

// PutBlob uploads data unless an object with the key already exists. Blobs
// are immutable, so losing a concurrent create race is not an error.
func (x *Backend) PutBlob(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := x.object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "application/octet-stream"

	if _, err := w.Write(data); err != nil {
		cancel()
		_ = w.Close()
		return goerr.Wrap(err, "failed to upload blob", goerr.V("bucket", x.bucket), goerr.V("key", key))
	}

	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return nil
		}
		return goerr.Wrap(err, "failed to commit blob", goerr.V("bucket", x.bucket), goerr.V("key", key))
	}

	return nil
}

func (x *Backend) GetBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := x.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(cas.ErrBlobNotFound, "no such blob", goerr.V("bucket", x.bucket), goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to read blob", goerr.V("bucket", x.bucket), goerr.V("key", key))
	}
	return r, nil
}
