package infra_test

import (
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/mock"
	"github.com/degit-io/degit-riptide/pkg/infra"
	"github.com/degit-io/degit-riptide/pkg/infra/gitcmd"
	"github.com/degit-io/degit-riptide/pkg/infra/localrepo"
	"github.com/degit-io/degit-riptide/pkg/infra/lock"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// git client and locker have defaults
		gt.V(t, clients.Git()).NotEqual(nil)
		gt.V(t, clients.Locker()).NotEqual(nil)
		// stores need explicit configuration
		gt.V(t, clients.ContentStore()).Equal(nil)
		gt.V(t, clients.Index()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
	})

	t.Run("WithContentStore option sets content store", func(t *testing.T) {
		store := &mock.ContentStoreMock{}
		clients := infra.New(infra.WithContentStore(store))
		gt.V(t, clients.ContentStore()).Equal(store)
	})

	t.Run("WithIndex option sets index", func(t *testing.T) {
		index := &mock.IndexMock{}
		clients := infra.New(infra.WithIndex(index))
		gt.V(t, clients.Index()).Equal(index)
	})

	t.Run("WithBigQuery option sets BigQuery client", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		clients := infra.New(infra.WithBigQuery(mockBQ))
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		resolver := gt.R1(localrepo.New(t.TempDir())).NoError(t)
		locker := lock.New()
		git := gitcmd.New("/usr/bin/git")

		clients := infra.New(
			infra.WithResolver(resolver),
			infra.WithLocker(locker),
			infra.WithGit(git),
		)

		gt.V(t, clients.Resolver()).Equal(resolver)
		gt.V(t, clients.Locker()).Equal(locker)
		gt.V(t, clients.Git()).Equal(git)
	})
}
