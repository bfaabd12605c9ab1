package cas_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/cas"
	"github.com/m-mizutani/gt"
)

func randomBytes(seed int64, n int) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func newStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	dir := t.TempDir()
	backend := gt.R1(cas.NewFileBackend(dir)).NoError(t)
	return cas.New(backend), dir
}

// countingBackend records the order in which blobs are fetched.
type countingBackend struct {
	cas.Backend
	mu   sync.Mutex
	gets []string
}

func (x *countingBackend) GetBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	x.mu.Lock()
	x.gets = append(x.gets, key)
	x.mu.Unlock()
	return x.Backend.GetBlob(ctx, key)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	testCases := map[string][]byte{
		"empty":       {},
		"small":       []byte("hello bundle"),
		"multi chunk": randomBytes(1, 6*1024*1024),
	}

	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			ref := gt.R1(store.Put(ctx, bytes.NewReader(data))).NoError(t)
			gt.V(t, len(ref)).Equal(64)

			rc := gt.R1(store.Get(ctx, ref)).NoError(t)
			defer rc.Close()
			got := gt.R1(io.ReadAll(rc)).NoError(t)
			gt.True(t, bytes.Equal(got, data))

			size := gt.R1(store.Size(ctx, ref)).NoError(t)
			gt.V(t, size).Equal(int64(len(data)))
		})
	}
}

func TestContentAddressing(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	data := randomBytes(2, 2*1024*1024)
	ref1 := gt.R1(store.Put(ctx, bytes.NewReader(data))).NoError(t)
	ref2 := gt.R1(store.Put(ctx, bytes.NewReader(data))).NoError(t)
	gt.V(t, ref1).Equal(ref2)

	other := append(bytes.Clone(data), 'x')
	ref3 := gt.R1(store.Put(ctx, bytes.NewReader(other))).NoError(t)
	gt.V(t, ref3).NotEqual(ref1)
}

func TestChunksAreFetchedInOrder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := &countingBackend{Backend: gt.R1(cas.NewFileBackend(dir)).NoError(t)}
	store := cas.New(backend)

	data := randomBytes(3, 8*1024*1024)
	ref := gt.R1(store.Put(ctx, bytes.NewReader(data))).NoError(t)

	rc := gt.R1(store.Get(ctx, ref)).NoError(t)
	// only the manifest is read until the content is consumed
	gt.A(t, backend.gets).Length(1)

	got := gt.R1(io.ReadAll(rc)).NoError(t)
	gt.NoError(t, rc.Close())
	gt.True(t, bytes.Equal(got, data))

	var m struct {
		Chunks []struct {
			Hash string `json:"hash"`
		} `json:"chunks"`
	}
	raw := gt.R1(os.ReadFile(filepath.Join(dir, "manifests", string(ref)))).NoError(t)
	gt.NoError(t, json.Unmarshal(raw, &m))
	gt.A(t, m.Chunks).Longer(1)

	expected := []string{"manifests/" + string(ref)}
	for _, c := range m.Chunks {
		expected = append(expected, "chunks/"+c.Hash[:2]+"/"+c.Hash)
	}
	gt.V(t, backend.gets).Equal(expected)
}

func TestCorruptedChunk(t *testing.T) {
	ctx := context.Background()
	store, dir := newStore(t)

	data := randomBytes(4, 3*1024*1024)
	ref := gt.R1(store.Put(ctx, bytes.NewReader(data))).NoError(t)

	var chunkFiles []string
	gt.NoError(t, filepath.WalkDir(filepath.Join(dir, "chunks"), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			chunkFiles = append(chunkFiles, p)
		}
		return nil
	}))
	gt.A(t, chunkFiles).Longer(0)
	gt.NoError(t, os.WriteFile(chunkFiles[0], []byte("garbage"), 0644))

	rc := gt.R1(store.Get(ctx, ref)).NoError(t)
	defer rc.Close()
	_, err := io.ReadAll(rc)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrCorruptedContent))
}

func TestCorruptedManifest(t *testing.T) {
	ctx := context.Background()
	store, dir := newStore(t)

	ref := gt.R1(store.Put(ctx, strings.NewReader("content"))).NoError(t)
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "manifests", string(ref)), []byte(`{"version":1}`), 0644))

	_, err := store.Get(ctx, ref)
	gt.True(t, errors.Is(err, types.ErrCorruptedContent))
}

func TestGetUnknown(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	t.Run("unknown reference", func(t *testing.T) {
		_, err := store.Get(ctx, types.ContentRef(strings.Repeat("a", 64)))
		gt.True(t, errors.Is(err, cas.ErrBlobNotFound))
	})

	t.Run("malformed reference", func(t *testing.T) {
		_, err := store.Get(ctx, "../../etc/passwd")
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})
}

func TestFileBackendPutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := gt.R1(cas.NewFileBackend(t.TempDir())).NoError(t)

	gt.NoError(t, backend.PutBlob(ctx, "chunks/ab/abc", []byte("one")))
	gt.NoError(t, backend.PutBlob(ctx, "chunks/ab/abc", []byte("one")))

	rc := gt.R1(backend.GetBlob(ctx, "chunks/ab/abc")).NoError(t)
	defer rc.Close()
	gt.V(t, string(gt.R1(io.ReadAll(rc)).NoError(t))).Equal("one")
}
