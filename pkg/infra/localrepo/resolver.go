// Package localrepo maps repository identities to bare repository paths
// under a storage root.
package localrepo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const tempDirName = ".tmp"

type Resolver struct {
	root string
}

func New(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve storage root", goerr.V("root", root))
	}
	return &Resolver{root: abs}, nil
}

func (x *Resolver) Root() string {
	return x.root
}

// Path returns <root>/<owner>/<repo>.git. The identity must be valid.
func (x *Resolver) Path(id model.RepositoryIdentity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	p := filepath.Join(x.root, string(id.OwnerID), id.RepoName.IndexKey())
	if !strings.HasPrefix(p, x.root+string(filepath.Separator)) {
		return "", goerr.New("resolved path escapes storage root", goerr.V("path", p))
	}
	return p, nil
}

// Resolve builds the repository path and reports whether a repository is
// already there. It never modifies the filesystem.
func (x *Resolver) Resolve(id model.RepositoryIdentity) (*model.LocalRepo, error) {
	p, err := x.Path(id)
	if err != nil {
		return nil, err
	}

	local := &model.LocalRepo{Identity: id, Path: p}
	stat, err := os.Stat(p)
	switch {
	case err == nil:
		if !stat.IsDir() {
			return nil, goerr.New("repository path is not a directory", goerr.V("path", p))
		}
		local.Exists = true
	case errors.Is(err, fs.ErrNotExist):
		local.Exists = false
	default:
		return nil, goerr.Wrap(err, "failed to stat repository path", goerr.V("path", p))
	}

	return local, nil
}

// TempDir creates a private working directory next to the owner's
// repositories, on the same filesystem so a finished repository can be
// renamed into place.
func (x *Resolver) TempDir(id model.RepositoryIdentity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	base := filepath.Join(x.root, string(id.OwnerID), tempDirName)
	if err := os.MkdirAll(base, 0o750); err != nil {
		return "", goerr.Wrap(err, "failed to create temp base", goerr.V("path", base))
	}

	dir, err := os.MkdirTemp(base, string(id.RepoName)+"-*")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp dir", goerr.V("base", base))
	}
	return dir, nil
}
