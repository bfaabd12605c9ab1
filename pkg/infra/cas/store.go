// Package cas is a content-addressed store for repository bundles. Content
// is split into content-defined chunks, each stored under its SHA-256. A
// manifest lists the chunks in order and its own hash is the content
// reference.
package cas

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"regexp"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/restic/chunker"
)

// Polynomial is the fixed chunking polynomial. Changing it changes every
// chunk boundary and therefore every reference.
const Polynomial = chunker.Pol(0x3DA3358B4DC173)

const manifestVersion = 1

var (
	ErrBlobNotFound = goerr.New("blob not found")

	ptnHash = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// Backend stores immutable blobs by key. PutBlob of an existing key is a
// no-op.
type Backend interface {
	PutBlob(ctx context.Context, key string, data []byte) error
	GetBlob(ctx context.Context, key string) (io.ReadCloser, error)
}

type manifest struct {
	Version int     `json:"version"`
	Size    int64   `json:"size"`
	Chunks  []chunk `json:"chunks"`
}

type chunk struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type Store struct {
	backend Backend
	pol     chunker.Pol
}

var _ interfaces.ContentStore = (*Store)(nil)

func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		pol:     Polynomial,
	}
}

func chunkKey(hash string) string   { return "chunks/" + hash[:2] + "/" + hash }
func manifestKey(ref string) string { return "manifests/" + ref }

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func validRef(ref types.ContentRef) bool {
	return ptnHash.MatchString(string(ref))
}

// Put stores all bytes of r and returns their reference. The same content
// always yields the same reference.
func (x *Store) Put(ctx context.Context, r io.Reader) (types.ContentRef, error) {
	var m manifest
	m.Version = manifestVersion
	m.Chunks = []chunk{}

	buf := make([]byte, chunker.MaxSize)
	c := chunker.New(r, x.pol)
	for {
		if err := ctx.Err(); err != nil {
			return "", goerr.Wrap(err, "content upload interrupted")
		}

		ch, err := c.Next(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", goerr.Wrap(err, "failed to read content")
		}

		hash := hashOf(ch.Data)
		if err := x.backend.PutBlob(ctx, chunkKey(hash), ch.Data); err != nil {
			return "", goerr.Wrap(err, "failed to store chunk", goerr.V("hash", hash))
		}

		m.Chunks = append(m.Chunks, chunk{Hash: hash, Size: int64(ch.Length)})
		m.Size += int64(ch.Length)
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode manifest")
	}
	ref := types.ContentRef(hashOf(raw))

	if err := x.backend.PutBlob(ctx, manifestKey(string(ref)), raw); err != nil {
		return "", goerr.Wrap(err, "failed to store manifest", goerr.V("ref", ref))
	}

	logging.From(ctx).Debug("content stored",
		slog.String("ref", string(ref)),
		slog.Int64("size", m.Size),
		slog.Int("chunks", len(m.Chunks)),
	)
	return ref, nil
}

// Get returns a reader over the content named by ref. Chunks are fetched
// lazily in manifest order and each is verified against its hash; a mismatch
// surfaces as types.ErrCorruptedContent from Read.
func (x *Store) Get(ctx context.Context, ref types.ContentRef) (io.ReadCloser, error) {
	m, err := x.readManifest(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &reader{
		ctx:     ctx,
		backend: x.backend,
		chunks:  m.Chunks,
	}, nil
}

// Size returns the total content size recorded for ref.
func (x *Store) Size(ctx context.Context, ref types.ContentRef) (int64, error) {
	m, err := x.readManifest(ctx, ref)
	if err != nil {
		return 0, err
	}
	return m.Size, nil
}

func (x *Store) readManifest(ctx context.Context, ref types.ContentRef) (*manifest, error) {
	if !validRef(ref) {
		return nil, goerr.Wrap(types.ErrValidationFailed, "malformed content reference", goerr.V("ref", ref))
	}

	raw, err := x.readBlob(ctx, manifestKey(string(ref)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch manifest", goerr.V("ref", ref))
	}
	if hashOf(raw) != string(ref) {
		return nil, goerr.Wrap(types.ErrCorruptedContent, "manifest hash mismatch", goerr.V("ref", ref))
	}

	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, goerr.Wrap(types.ErrCorruptedContent, "malformed manifest", goerr.V("ref", ref), goerr.V("error", err.Error()))
	}
	if m.Version != manifestVersion {
		return nil, goerr.Wrap(types.ErrCorruptedContent, "unsupported manifest version", goerr.V("ref", ref), goerr.V("version", m.Version))
	}
	for _, c := range m.Chunks {
		if !ptnHash.MatchString(c.Hash) {
			return nil, goerr.Wrap(types.ErrCorruptedContent, "malformed chunk hash in manifest", goerr.V("ref", ref))
		}
	}

	return &m, nil
}

func (x *Store) readBlob(ctx context.Context, key string) ([]byte, error) {
	rc, err := x.backend.GetBlob(ctx, key)
	if err != nil {
		return nil, err
	}
	defer safe.Close(rc)

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read blob", goerr.V("key", key))
	}
	return data, nil
}

type reader struct {
	ctx     context.Context
	backend Backend
	chunks  []chunk
	current *bytes.Reader
	next    int
	err     error
}

func (x *reader) Read(p []byte) (int, error) {
	for {
		if x.err != nil {
			return 0, x.err
		}
		if x.current != nil && x.current.Len() > 0 {
			return x.current.Read(p)
		}
		if x.next >= len(x.chunks) {
			return 0, io.EOF
		}
		x.err = x.load(x.chunks[x.next])
		x.next++
	}
}

func (x *reader) load(c chunk) error {
	rc, err := x.backend.GetBlob(x.ctx, chunkKey(c.Hash))
	if err != nil {
		return goerr.Wrap(err, "failed to fetch chunk", goerr.V("hash", c.Hash))
	}
	defer safe.Close(rc)

	data, err := io.ReadAll(rc)
	if err != nil {
		return goerr.Wrap(err, "failed to read chunk", goerr.V("hash", c.Hash))
	}
	if int64(len(data)) != c.Size || hashOf(data) != c.Hash {
		return goerr.Wrap(types.ErrCorruptedContent, "chunk hash mismatch",
			goerr.V("hash", c.Hash),
			goerr.V("size", len(data)),
		)
	}

	x.current = bytes.NewReader(data)
	return nil
}

func (x *reader) Close() error {
	x.current = nil
	x.chunks = nil
	if x.err == nil {
		x.err = io.ErrClosedPipe
	}
	return nil
}
