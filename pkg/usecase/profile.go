package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

func (x *UseCase) profile(ctx context.Context) (interfaces.IndexHandle, error) {
	if x.defaultOwner == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "default owner is not configured")
	}
	ns := types.Namespace(x.defaultOwner)
	handle, err := x.clients.Index().Open(ctx, ns)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open profile namespace", goerr.V("namespace", ns))
	}
	return handle, nil
}

// GetDisplayName returns an empty name when none has been set.
func (x *UseCase) GetDisplayName(ctx context.Context) (*model.DisplayName, error) {
	handle, err := x.profile(ctx)
	if err != nil {
		return nil, err
	}

	var name model.DisplayName
	if err := handle.Get(ctx, model.ProfileKeyDisplayName, &name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.DisplayName{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get display name")
	}
	return &name, nil
}

func (x *UseCase) SetDisplayName(ctx context.Context, name *model.DisplayName) error {
	if err := name.Validate(); err != nil {
		return err
	}

	handle, err := x.profile(ctx)
	if err != nil {
		return err
	}
	if err := handle.Put(ctx, model.ProfileKeyDisplayName, name); err != nil {
		return goerr.Wrap(err, "failed to put display name")
	}
	return nil
}

// ListRepos returns an empty list when no repository has been registered.
func (x *UseCase) ListRepos(ctx context.Context) (*model.RepoList, error) {
	handle, err := x.profile(ctx)
	if err != nil {
		return nil, err
	}

	var list model.RepoList
	if err := handle.Get(ctx, model.ProfileKeyRepos, &list); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to get repository list")
		}
	}
	if list.Repos == nil {
		list.Repos = []model.RepoSummary{}
	}
	return &list, nil
}

// AddRepo appends repo to the profile's list. Names are unique; adding an
// existing name fails with repository.ErrAlreadyExists.
func (x *UseCase) AddRepo(ctx context.Context, repo *model.RepoSummary) error {
	if err := repo.Validate(); err != nil {
		return err
	}

	handle, err := x.profile(ctx)
	if err != nil {
		return err
	}

	var list model.RepoList
	if err := handle.Update(ctx, model.ProfileKeyRepos, &list, func(found bool) error {
		if slices.ContainsFunc(list.Repos, func(r model.RepoSummary) bool { return r.Name == repo.Name }) {
			return goerr.Wrap(repository.ErrAlreadyExists, "Repo already exists", goerr.V("name", repo.Name))
		}
		list.Repos = append(list.Repos, *repo)
		return nil
	}); err != nil {
		return err
	}
	return nil
}
