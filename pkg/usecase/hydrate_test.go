package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/cas"
	"github.com/degit-io/degit-riptide/pkg/infra/gitrepo"
	"github.com/m-mizutani/gt"
)

func TestEnsureLocal(t *testing.T) {
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	t.Run("create empty repository when missing", func(t *testing.T) {
		uc, env := newTestUseCase(t)
		local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{
			Identity:        id,
			CreateIfMissing: true,
		})).NoError(t)

		gt.True(t, local.Exists)
		gt.True(t, strings.HasPrefix(local.Path, env.root))
		gt.True(t, strings.HasSuffix(local.Path, filepath.Join("alice", "demo.git")))
		gt.False(t, gt.R1(gitrepo.HasRefs(local.Path)).NoError(t))
	})

	t.Run("not found without create", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		_, err := uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRepoNotFound))
	})

	t.Run("idempotent on existing repository", func(t *testing.T) {
		uc, env := newTestUseCase(t)
		input := &model.ResolveInput{Identity: id, CreateIfMissing: true}
		first := gt.R1(uc.EnsureLocal(ctx, input)).NoError(t)

		marker := filepath.Join(first.Path, "marker")
		gt.NoError(t, os.WriteFile(marker, []byte("x"), 0644))

		// an index record must not replace the present copy
		handle := gt.R1(env.index.Open(ctx, "alice")).NoError(t)
		gt.NoError(t, handle.Put(ctx, "demo.git", &model.IndexEntry{ContentRef: types.ContentRef(strings.Repeat("0", 64))}))

		second := gt.R1(uc.EnsureLocal(ctx, input)).NoError(t)
		gt.V(t, second.Path).Equal(first.Path)
		_, err := os.Stat(marker)
		gt.NoError(t, err)
	})

	t.Run("invalid identity", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		_, err := uc.EnsureLocal(ctx, &model.ResolveInput{
			Identity:        model.RepositoryIdentity{OwnerID: "alice", RepoName: ".."},
			CreateIfMissing: true,
		})
		gt.True(t, errors.Is(err, types.ErrInvalidIdentity))
	})

	t.Run("missing content leaves nothing behind", func(t *testing.T) {
		uc, env := newTestUseCase(t)
		handle := gt.R1(env.index.Open(ctx, "alice")).NoError(t)
		gt.NoError(t, handle.Put(ctx, "demo.git", &model.IndexEntry{
			ContentRef: types.ContentRef(strings.Repeat("a", 64)),
		}))

		_, err := uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRepoResolution))
		gt.True(t, errors.Is(err, cas.ErrBlobNotFound))

		_, statErr := os.Stat(filepath.Join(env.root, "alice", "demo.git"))
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("concurrent calls create once", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		input := &model.ResolveInput{Identity: id, CreateIfMissing: true}

		var wg sync.WaitGroup
		paths := make([]string, 8)
		errs := make([]error, 8)
		for i := range paths {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				local, err := uc.EnsureLocal(ctx, input)
				errs[i] = err
				if local != nil {
					paths[i] = local.Path
				}
			}(i)
		}
		wg.Wait()

		for i := range paths {
			gt.NoError(t, errs[i])
			gt.V(t, paths[i]).Equal(paths[0])
		}
	})
}

func TestEnsureLocalHydrate(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	uc, _ := newTestUseCase(t)
	local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})).NoError(t)
	pushCommit(t, local.Path, "main", "# hello\n")

	result := gt.R1(uc.Publish(ctx, id)).NoError(t)
	gt.False(t, result.Skipped)

	gt.NoError(t, os.RemoveAll(local.Path))

	t.Run("from owner namespace", func(t *testing.T) {
		hydrated := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id})).NoError(t)
		gt.V(t, hydrated.Path).Equal(local.Path)

		repo := gt.R1(gitrepo.Open(hydrated.Path)).NoError(t)
		gt.V(t, gt.R1(repo.Branches()).NoError(t)).Equal([]string{"main"})
	})

	t.Run("from another namespace", func(t *testing.T) {
		other := model.RepositoryIdentity{OwnerID: "bob", RepoName: "demo"}
		hydrated := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{
			Identity:  other,
			Namespace: "alice",
		})).NoError(t)
		gt.True(t, strings.HasSuffix(hydrated.Path, filepath.Join("bob", "demo.git")))
		gt.True(t, gt.R1(gitrepo.HasRefs(hydrated.Path)).NoError(t))
	})
}
