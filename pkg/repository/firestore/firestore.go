package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultCollection = "degit"
	collectionKeys    = "keys"
)

// Index stores each namespace as a document of the root collection and each
// key as a document of its "keys" subcollection:
//
//	<collection>/<namespace>/keys/<key>
type Index struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.Index = (*Index)(nil)

// New creates a new Firestore-based index
func New(ctx context.Context, projectID, databaseID, collection string) (*Index, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	if collection == "" {
		collection = DefaultCollection
	}

	return &Index{
		client:     client,
		collection: collection,
	}, nil
}

func (x *Index) Close() error {
	return x.client.Close()
}

func (x *Index) Open(ctx context.Context, ns types.Namespace) (interfaces.IndexHandle, error) {
	if err := repository.ValidateNamespace(ns); err != nil {
		return nil, err
	}
	return &handle{
		client: x.client,
		keys:   x.client.Collection(x.collection).Doc(ns.String()).Collection(collectionKeys),
		ns:     ns,
	}, nil
}

type handle struct {
	client *firestore.Client
	keys   *firestore.CollectionRef
	ns     types.Namespace
}

func (x *handle) doc(key string) (*firestore.DocumentRef, error) {
	if err := repository.ValidateKey(key); err != nil {
		return nil, err
	}
	return x.keys.Doc(key), nil
}

func (x *handle) Get(ctx context.Context, key string, v any) error {
	ref, err := x.doc(key)
	if err != nil {
		return err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(repository.ErrNotFound, "key not found", goerr.V("namespace", x.ns), goerr.V("key", key))
		}
		return goerr.Wrap(err, "failed to get key", goerr.V("namespace", x.ns), goerr.V("key", key))
	}

	if err := snap.DataTo(v); err != nil {
		return goerr.Wrap(err, "failed to decode value", goerr.V("namespace", x.ns), goerr.V("key", key))
	}
	return nil
}

func (x *handle) Put(ctx context.Context, key string, v any) error {
	ref, err := x.doc(key)
	if err != nil {
		return err
	}

	if _, err := ref.Set(ctx, v); err != nil {
		return goerr.Wrap(err, "failed to put key", goerr.V("namespace", x.ns), goerr.V("key", key))
	}
	return nil
}

// Update runs the read-modify-write in a transaction, so concurrent writers
// on other nodes are retried rather than overwritten. v is reset before each
// attempt.
func (x *handle) Update(ctx context.Context, key string, v any, mutate func(found bool) error) error {
	ref, err := x.doc(key)
	if err != nil {
		return err
	}

	err = x.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		repository.ResetValue(v)

		found := true
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get key in transaction")
			}
			found = false
		}
		if found {
			if err := snap.DataTo(v); err != nil {
				return goerr.Wrap(err, "failed to decode value")
			}
		}

		if err := mutate(found); err != nil {
			return err
		}
		return tx.Set(ref, v)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to update key", goerr.V("namespace", x.ns), goerr.V("key", key))
	}
	return nil
}
