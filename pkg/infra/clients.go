package infra

import (
	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/infra/gitcmd"
	"github.com/degit-io/degit-riptide/pkg/infra/localrepo"
	"github.com/degit-io/degit-riptide/pkg/infra/lock"
)

type Clients struct {
	contentStore interfaces.ContentStore
	index        interfaces.Index
	bqClient     interfaces.BigQuery
	gitClient    gitcmd.Client
	resolver     *localrepo.Resolver
	locker       *lock.Locker
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		gitClient: gitcmd.New("git"),
		locker:    lock.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) ContentStore() interfaces.ContentStore {
	return x.contentStore
}
func (x *Clients) Index() interfaces.Index {
	return x.index
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) Git() gitcmd.Client {
	return x.gitClient
}
func (x *Clients) Resolver() *localrepo.Resolver {
	return x.resolver
}
func (x *Clients) Locker() *lock.Locker {
	return x.locker
}

func WithContentStore(store interfaces.ContentStore) Option {
	return func(x *Clients) {
		x.contentStore = store
	}
}

func WithIndex(index interfaces.Index) Option {
	return func(x *Clients) {
		x.index = index
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithGit(client gitcmd.Client) Option {
	return func(x *Clients) {
		x.gitClient = client
	}
}

func WithResolver(resolver *localrepo.Resolver) Option {
	return func(x *Clients) {
		x.resolver = resolver
	}
}

func WithLocker(locker *lock.Locker) Option {
	return func(x *Clients) {
		x.locker = locker
	}
}
