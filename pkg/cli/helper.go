package cli

import (
	"context"
	"path/filepath"

	"github.com/degit-io/degit-riptide/pkg/cli/config"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra"
	"github.com/degit-io/degit-riptide/pkg/infra/lock"
	"github.com/degit-io/degit-riptide/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

// stack is the configuration shared by every command that touches
// repositories.
type stack struct {
	storage      config.Storage
	git          config.Git
	contentStore config.ContentStore
	firestore    config.Firestore
	bigQuery     config.BigQuery
}

func (x *stack) Flags() []cli.Flag {
	return slice.Flatten(
		x.storage.Flags(),
		x.git.Flags(),
		x.contentStore.Flags(),
		x.firestore.Flags(),
		x.bigQuery.Flags(),
	)
}

// newUseCase builds the use case from the configuration. The returned
// function releases every client that was opened.
func (x *stack) newUseCase(ctx context.Context) (*usecase.UseCase, types.OwnerID, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	owner, err := x.storage.OwnerID()
	if err != nil {
		return nil, "", nil, err
	}

	resolver, err := x.storage.NewResolver()
	if err != nil {
		return nil, "", nil, err
	}

	gitClient, err := x.git.NewClient(ctx)
	if err != nil {
		return nil, "", nil, err
	}

	store, closeStore, err := x.contentStore.NewStore(ctx, filepath.Join(resolver.Root(), ".content"))
	if err != nil {
		return nil, "", nil, err
	}
	closers = append(closers, closeStore)

	index, closeIndex, err := x.firestore.NewIndex(ctx)
	if err != nil {
		cleanup()
		return nil, "", nil, err
	}
	closers = append(closers, closeIndex)

	options := []infra.Option{
		infra.WithResolver(resolver),
		infra.WithGit(gitClient),
		infra.WithContentStore(store),
		infra.WithIndex(index),
		infra.WithLocker(lock.New(lock.WithFileLock(x.storage.LockDir()))),
	}

	bqClient, closeBQ, err := x.bigQuery.NewClient(ctx)
	if err != nil {
		cleanup()
		return nil, "", nil, err
	}
	closers = append(closers, closeBQ)
	if bqClient != nil {
		options = append(options, infra.WithBigQuery(bqClient))
	}

	uc := usecase.New(infra.New(options...),
		usecase.WithDefaultOwner(owner),
		usecase.WithPublishTimeout(x.git.PublishTimeout()),
	)
	return uc, owner, cleanup, nil
}

// repoIdentity builds the identity named by the --owner and --repo flags,
// falling back to the default owner.
func repoIdentity(owner, repo string, defaultOwner types.OwnerID) (model.RepositoryIdentity, error) {
	if owner == "" {
		owner = string(defaultOwner)
	}
	id := model.NewRepositoryIdentity(types.OwnerID(owner), repo)
	if err := id.Validate(); err != nil {
		return model.RepositoryIdentity{}, goerr.Wrap(err, "invalid repository", goerr.V("owner", owner), goerr.V("repo", repo))
	}
	return id, nil
}
