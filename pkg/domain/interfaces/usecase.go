package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"
	"io"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
)

// ExchangeWriter receives the output of a protocol exchange. Start is called
// exactly once after the repository has been resolved and before the first
// byte of subprocess output is written.
type ExchangeWriter interface {
	io.Writer
	Start() error
}

type UseCase interface {
	AdvertiseRefs(ctx context.Context, input *model.ExchangeInput, w ExchangeWriter) error
	ExecuteService(ctx context.Context, input *model.ExchangeInput, w ExchangeWriter) error
	EnsureLocal(ctx context.Context, input *model.ResolveInput) (*model.LocalRepo, error)
	Publish(ctx context.Context, id model.RepositoryIdentity) (*model.PublishResult, error)

	BrowseTree(ctx context.Context, input *model.BrowseInput) (*model.TreeListing, error)
	ReadBlob(ctx context.Context, input *model.BrowseInput) (*model.Blob, error)

	GetDisplayName(ctx context.Context) (*model.DisplayName, error)
	SetDisplayName(ctx context.Context, name *model.DisplayName) error
	ListRepos(ctx context.Context) (*model.RepoList, error)
	AddRepo(ctx context.Context, repo *model.RepoSummary) error
}
