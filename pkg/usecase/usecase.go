package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultPublishTimeout = 5 * time.Minute

type UseCase struct {
	clients        *infra.Clients
	publishTimeout time.Duration
	defaultOwner   types.OwnerID
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithPublishTimeout bounds one run of the publish pipeline.
func WithPublishTimeout(d time.Duration) Option {
	return func(x *UseCase) {
		x.publishTimeout = d
	}
}

// WithDefaultOwner sets the owner whose namespace holds the profile.
func WithDefaultOwner(owner types.OwnerID) Option {
	return func(x *UseCase) {
		x.defaultOwner = owner
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:        clients,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// lock serializes work on one repository across requests.
func (x *UseCase) lock(ctx context.Context, id model.RepositoryIdentity) (func(), error) {
	unlock, err := x.clients.Locker().Lock(ctx, id.LockKey())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to lock repository", goerr.V("repo", id))
	}
	return unlock, nil
}

// classify marks err as belonging to the class sentinel while keeping its
// own chain intact for errors.Is.
func classify(class, err error, msg string, values ...goerr.Option) error {
	if errors.Is(err, class) {
		return goerr.Wrap(err, msg, values...)
	}
	return goerr.Wrap(errors.Join(class, err), msg, values...)
}
