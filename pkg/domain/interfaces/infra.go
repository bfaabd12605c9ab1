package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . ContentStore Index IndexHandle BigQuery

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
)

// ContentStore is a content-addressed blob store. A reference returned by Put
// names exactly the bytes that were read from r.
type ContentStore interface {
	Put(ctx context.Context, r io.Reader) (types.ContentRef, error)
	Get(ctx context.Context, ref types.ContentRef) (io.ReadCloser, error)
}

// Index is the replicated key/value index. Namespaces are opened on demand.
type Index interface {
	Open(ctx context.Context, ns types.Namespace) (IndexHandle, error)
}

// IndexHandle reads and writes values of one namespace. Get returns an error
// wrapping repository.ErrNotFound when the key is absent.
type IndexHandle interface {
	Get(ctx context.Context, key string, v any) error
	Put(ctx context.Context, key string, v any) error
	// Update atomically reads key into v, calls mutate and writes v back.
	// found reports whether the key existed. No write happens when mutate
	// returns an error.
	Update(ctx context.Context, key string, v any, mutate func(found bool) error) error
}

// BigQuery is the sink of publish audit records.
type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error
	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
