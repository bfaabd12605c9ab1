package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestBrowse(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	uc, _ := newTestUseCase(t)
	local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})).NoError(t)
	pushCommit(t, local.Path, "main", "# hello\n")

	t.Run("tree", func(t *testing.T) {
		listing := gt.R1(uc.BrowseTree(ctx, &model.BrowseInput{
			Identity: id,
			Branch:   "main",
		})).NoError(t)
		gt.True(t, listing.HasReadMe)
		gt.A(t, listing.Files).Length(1)
		gt.V(t, listing.Files[0].FileName).Equal("README.md")
		gt.V(t, listing.LastCommit.Message).Equal("initial")
	})

	t.Run("blob", func(t *testing.T) {
		blob := gt.R1(uc.ReadBlob(ctx, &model.BrowseInput{
			Identity: id,
			Branch:   "main",
			Path:     "README.md",
		})).NoError(t)
		gt.V(t, blob.Body).Equal("# hello\n")
	})

	t.Run("unknown branch", func(t *testing.T) {
		_, err := uc.BrowseTree(ctx, &model.BrowseInput{Identity: id, Branch: "nope"})
		gt.True(t, errors.Is(err, types.ErrRefNotFound))
	})

	t.Run("invalid branch", func(t *testing.T) {
		_, err := uc.BrowseTree(ctx, &model.BrowseInput{Identity: id, Branch: "../main"})
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})
}

func TestBrowseNeverCreates(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.BrowseTree(context.Background(), &model.BrowseInput{
		Identity: model.RepositoryIdentity{OwnerID: "alice", RepoName: "ghost"},
		Branch:   "main",
	})
	gt.True(t, errors.Is(err, types.ErrRepoNotFound))

	_, err = uc.EnsureLocal(context.Background(), &model.ResolveInput{
		Identity: model.RepositoryIdentity{OwnerID: "alice", RepoName: "ghost"},
	})
	gt.True(t, errors.Is(err, types.ErrRepoNotFound))
}
