package usecase

import (
	"context"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/infra/gitrepo"
)

// BrowseTree lists a directory of an existing repository. The repository is
// hydrated when only the index knows it, but never created.
func (x *UseCase) BrowseTree(ctx context.Context, input *model.BrowseInput) (*model.TreeListing, error) {
	repo, err := x.openForBrowse(ctx, input)
	if err != nil {
		return nil, err
	}
	return repo.Tree(input.Branch, input.Path)
}

// ReadBlob returns one file of an existing repository.
func (x *UseCase) ReadBlob(ctx context.Context, input *model.BrowseInput) (*model.Blob, error) {
	repo, err := x.openForBrowse(ctx, input)
	if err != nil {
		return nil, err
	}
	return repo.Blob(input.Branch, input.Path)
}

func (x *UseCase) openForBrowse(ctx context.Context, input *model.BrowseInput) (*gitrepo.Repository, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	local, err := x.EnsureLocal(ctx, &model.ResolveInput{
		Identity:  input.Identity,
		Namespace: input.Namespace,
	})
	if err != nil {
		return nil, err
	}

	return gitrepo.Open(local.Path)
}
