package testhelper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

// TestAll runs all test cases for Index
// This is the main entry point for testing any Index implementation
func TestAll(t *testing.T, index interfaces.Index) {
	t.Run("GetAndPut", func(t *testing.T) {
		TestGetAndPut(t, index)
	})
	t.Run("NamespaceIsolation", func(t *testing.T) {
		TestNamespaceIsolation(t, index)
	})
	t.Run("Update", func(t *testing.T) {
		TestUpdate(t, index)
	})
	t.Run("ConcurrentUpdate", func(t *testing.T) {
		TestConcurrentUpdate(t, index)
	})
	t.Run("InvalidInput", func(t *testing.T) {
		TestInvalidInput(t, index)
	})
}

func newNamespace() types.Namespace {
	return types.Namespace(fmt.Sprintf("owner-%s", uuid.New().String()[:8]))
}

// TestGetAndPut tests a missing key, a write and an overwrite
func TestGetAndPut(t *testing.T, index interfaces.Index) {
	ctx := context.Background()
	h := gt.R1(index.Open(ctx, newNamespace())).NoError(t)

	var entry model.IndexEntry
	err := h.Get(ctx, "project.git", &entry)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	now := time.Now().UTC().Truncate(time.Millisecond)
	gt.NoError(t, h.Put(ctx, "project.git", &model.IndexEntry{
		ContentRef:  "ref-1",
		Size:        100,
		PublishedAt: now,
	}))

	gt.NoError(t, h.Get(ctx, "project.git", &entry))
	gt.V(t, entry.ContentRef).Equal(types.ContentRef("ref-1"))
	gt.V(t, entry.Size).Equal(int64(100))
	gt.True(t, entry.PublishedAt.Equal(now))

	gt.NoError(t, h.Put(ctx, "project.git", &model.IndexEntry{ContentRef: "ref-2"}))
	gt.NoError(t, h.Get(ctx, "project.git", &entry))
	gt.V(t, entry.ContentRef).Equal(types.ContentRef("ref-2"))
}

// TestNamespaceIsolation tests that the same key in two namespaces is independent
func TestNamespaceIsolation(t *testing.T, index interfaces.Index) {
	ctx := context.Background()
	h1 := gt.R1(index.Open(ctx, newNamespace())).NoError(t)
	h2 := gt.R1(index.Open(ctx, newNamespace())).NoError(t)

	gt.NoError(t, h1.Put(ctx, "shared.git", &model.IndexEntry{ContentRef: "one"}))

	var entry model.IndexEntry
	gt.True(t, errors.Is(h2.Get(ctx, "shared.git", &entry), repository.ErrNotFound))

	gt.NoError(t, h2.Put(ctx, "shared.git", &model.IndexEntry{ContentRef: "two"}))
	gt.NoError(t, h1.Get(ctx, "shared.git", &entry))
	gt.V(t, entry.ContentRef).Equal(types.ContentRef("one"))
}

// TestUpdate tests read-modify-write including an aborted mutation
func TestUpdate(t *testing.T, index interfaces.Index) {
	ctx := context.Background()
	h := gt.R1(index.Open(ctx, newNamespace())).NoError(t)

	var list model.RepoList
	gt.NoError(t, h.Update(ctx, model.ProfileKeyRepos, &list, func(found bool) error {
		gt.False(t, found)
		list.Repos = append(list.Repos, model.RepoSummary{Name: "first"})
		return nil
	}))

	gt.NoError(t, h.Update(ctx, model.ProfileKeyRepos, &list, func(found bool) error {
		gt.True(t, found)
		gt.A(t, list.Repos).Length(1)
		list.Repos = append(list.Repos, model.RepoSummary{Name: "second", Description: "desc"})
		return nil
	}))

	abort := errors.New("abort")
	err := h.Update(ctx, model.ProfileKeyRepos, &list, func(found bool) error {
		list.Repos = nil
		return abort
	})
	gt.True(t, errors.Is(err, abort))

	var stored model.RepoList
	gt.NoError(t, h.Get(ctx, model.ProfileKeyRepos, &stored))
	gt.A(t, stored.Repos).Length(2)
	gt.V(t, stored.Repos[1].Description).Equal("desc")
}

// TestConcurrentUpdate tests that concurrent read-modify-writes are not lost
func TestConcurrentUpdate(t *testing.T, index interfaces.Index) {
	ctx := context.Background()
	ns := newNamespace()

	const n = 5
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := index.Open(ctx, ns)
			if err != nil {
				t.Error(err)
				return
			}
			var list model.RepoList
			if err := h.Update(ctx, model.ProfileKeyRepos, &list, func(found bool) error {
				list.Repos = append(list.Repos, model.RepoSummary{Name: fmt.Sprintf("repo-%d", i)})
				return nil
			}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	h := gt.R1(index.Open(ctx, ns)).NoError(t)
	var list model.RepoList
	gt.NoError(t, h.Get(ctx, model.ProfileKeyRepos, &list))
	gt.A(t, list.Repos).Length(n)
}

// TestInvalidInput tests that keys and namespaces unusable as IDs are rejected
func TestInvalidInput(t *testing.T, index interfaces.Index) {
	ctx := context.Background()

	_, err := index.Open(ctx, "a/b")
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	h := gt.R1(index.Open(ctx, newNamespace())).NoError(t)
	var entry model.IndexEntry
	gt.True(t, errors.Is(h.Get(ctx, "a/b", &entry), repository.ErrInvalidInput))
	gt.True(t, errors.Is(h.Put(ctx, "", &entry), repository.ErrInvalidInput))
}
