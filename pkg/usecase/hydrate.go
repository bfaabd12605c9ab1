package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/gitrepo"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// EnsureLocal makes the repository available on the local filesystem,
// materializing it from the content store when it is missing. Calling it
// again for a present repository does nothing.
func (x *UseCase) EnsureLocal(ctx context.Context, input *model.ResolveInput) (*model.LocalRepo, error) {
	if err := input.Identity.Validate(); err != nil {
		return nil, err
	}

	unlock, err := x.lock(ctx, input.Identity)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return x.ensureLocal(ctx, input)
}

// ensureLocal must be called with the repository lock held.
func (x *UseCase) ensureLocal(ctx context.Context, input *model.ResolveInput) (*model.LocalRepo, error) {
	id := input.Identity
	logger := logging.From(ctx).With(slog.String("repo", id.String()))

	local, err := x.clients.Resolver().Resolve(id)
	if err != nil {
		return nil, err
	}
	if local.Exists {
		return local, nil
	}

	ns := input.IndexNamespace()
	handle, err := x.clients.Index().Open(ctx, ns)
	if err != nil {
		return nil, classify(types.ErrRepoResolution, err, "failed to open index namespace", goerr.V("namespace", ns))
	}

	var entry model.IndexEntry
	if err := handle.Get(ctx, id.RepoName.IndexKey(), &entry); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, classify(types.ErrRepoResolution, err, "failed to read index record", goerr.V("repo", id))
		}
		if !input.CreateIfMissing {
			return nil, goerr.Wrap(types.ErrRepoNotFound, "repository is neither local nor indexed",
				goerr.V("repo", id),
				goerr.V("namespace", ns),
			)
		}

		if err := x.materialize(ctx, local, func(dst string) error {
			return gitrepo.InitBare(dst)
		}); err != nil {
			return nil, classify(types.ErrRepoResolution, err, "failed to create empty repository", goerr.V("repo", id))
		}
		logger.Info("created empty repository", slog.String("path", local.Path))
		return local, nil
	}

	started := time.Now()
	if err := x.materialize(ctx, local, func(dst string) error {
		return x.hydrate(ctx, entry.ContentRef, dst)
	}); err != nil {
		return nil, classify(types.ErrRepoResolution, err, "failed to hydrate repository",
			goerr.V("repo", id),
			goerr.V("ref", entry.ContentRef),
		)
	}

	logger.Info("hydrated repository",
		slog.String("ref", entry.ContentRef.String()),
		slog.String("namespace", ns.String()),
		slog.Duration("elapsed", time.Since(started)),
	)
	return local, nil
}

// materialize builds a repository with build in a private temp directory and
// renames the finished result to the canonical path, so a partially built
// repository is never visible there.
func (x *UseCase) materialize(ctx context.Context, local *model.LocalRepo, build func(dst string) error) error {
	tmpDir, err := x.clients.Resolver().TempDir(local.Identity)
	if err != nil {
		return err
	}
	defer safe.RemoveAll(tmpDir)

	staged := filepath.Join(tmpDir, "repo.git")
	if err := build(staged); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(local.Path), 0o750); err != nil {
		return goerr.Wrap(err, "failed to create owner directory", goerr.V("path", local.Path))
	}
	if err := os.Rename(staged, local.Path); err != nil {
		// another process sharing the root may have won the race
		if _, statErr := os.Stat(local.Path); statErr == nil {
			logging.From(ctx).Warn("repository appeared while materializing, keeping existing one",
				slog.String("path", local.Path),
			)
			local.Exists = true
			return nil
		}
		return goerr.Wrap(err, "failed to move repository into place", goerr.V("path", local.Path))
	}

	local.Exists = true
	return nil
}

// hydrate fetches the bundle named by ref and unbundles it into dst.
func (x *UseCase) hydrate(ctx context.Context, ref types.ContentRef, dst string) error {
	rc, err := x.clients.ContentStore().Get(ctx, ref)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch bundle", goerr.V("ref", ref))
	}
	defer safe.Close(rc)

	bundle := filepath.Join(filepath.Dir(dst), "repo.bundle")
	f, err := os.Create(filepath.Clean(bundle))
	if err != nil {
		return goerr.Wrap(err, "failed to create bundle file", goerr.V("path", bundle))
	}

	if _, err := io.Copy(f, rc); err != nil {
		safe.Close(f)
		return goerr.Wrap(err, "failed to write bundle", goerr.V("ref", ref))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close bundle file", goerr.V("path", bundle))
	}

	return x.clients.Git().CloneMirror(ctx, bundle, dst)
}
