package cas

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// FileBackend keeps blobs as files under a directory.
type FileBackend struct {
	dir string
}

var _ Backend = (*FileBackend)(nil)

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create content directory", goerr.V("dir", dir))
	}
	return &FileBackend{dir: dir}, nil
}

func (x *FileBackend) path(key string) string {
	return filepath.Join(x.dir, filepath.FromSlash(key))
}

// PutBlob writes data to a temp file and renames it into place so that a
// reader never sees a partial blob.
func (x *FileBackend) PutBlob(ctx context.Context, key string, data []byte) error {
	dst := x.path(key)
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return goerr.Wrap(err, "failed to create blob directory", goerr.V("key", key))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".blob-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp blob", goerr.V("key", key))
	}
	committed := false
	defer func() {
		if !committed {
			safe.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		safe.Close(tmp)
		return goerr.Wrap(err, "failed to write blob", goerr.V("key", key))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close blob", goerr.V("key", key))
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return goerr.Wrap(err, "failed to commit blob", goerr.V("key", key))
	}
	committed = true

	return nil
}

func (x *FileBackend) GetBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(x.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrBlobNotFound, "no such blob", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to open blob", goerr.V("key", key))
	}
	return f, nil
}
