package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

// Index is an in-process index. Values are kept JSON encoded so that callers
// never share memory with the store.
type Index struct {
	mu     sync.Mutex
	spaces map[types.Namespace]map[string][]byte
}

var _ interfaces.Index = (*Index)(nil)

// New creates a new in-memory index
func New() *Index {
	return &Index{
		spaces: make(map[types.Namespace]map[string][]byte),
	}
}

func (x *Index) Open(ctx context.Context, ns types.Namespace) (interfaces.IndexHandle, error) {
	if err := repository.ValidateNamespace(ns); err != nil {
		return nil, err
	}
	return &handle{index: x, ns: ns}, nil
}

type handle struct {
	index *Index
	ns    types.Namespace
}

func (x *handle) get(key string, v any) (bool, error) {
	raw, ok := x.index.spaces[x.ns][key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, goerr.Wrap(err, "failed to decode value", goerr.V("namespace", x.ns), goerr.V("key", key))
	}
	return true, nil
}

func (x *handle) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to encode value", goerr.V("namespace", x.ns), goerr.V("key", key))
	}

	space, ok := x.index.spaces[x.ns]
	if !ok {
		space = make(map[string][]byte)
		x.index.spaces[x.ns] = space
	}
	space[key] = raw
	return nil
}

func (x *handle) Get(ctx context.Context, key string, v any) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}

	x.index.mu.Lock()
	defer x.index.mu.Unlock()

	found, err := x.get(key, v)
	if err != nil {
		return err
	}
	if !found {
		return goerr.Wrap(repository.ErrNotFound, "key not found", goerr.V("namespace", x.ns), goerr.V("key", key))
	}
	return nil
}

func (x *handle) Put(ctx context.Context, key string, v any) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}

	x.index.mu.Lock()
	defer x.index.mu.Unlock()
	return x.put(key, v)
}

func (x *handle) Update(ctx context.Context, key string, v any, mutate func(found bool) error) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}

	x.index.mu.Lock()
	defer x.index.mu.Unlock()

	repository.ResetValue(v)
	found, err := x.get(key, v)
	if err != nil {
		return err
	}
	if err := mutate(found); err != nil {
		return err
	}
	return x.put(key, v)
}
