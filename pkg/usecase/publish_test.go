package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/degit-io/degit-riptide/pkg/domain/mock"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/degit-io/degit-riptide/pkg/usecase"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/gt"
)

func TestPublish(t *testing.T) {
	requireGit(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	uc, env := newTestUseCase(t)
	local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})).NoError(t)
	pushCommit(t, local.Path, "main", "# hello\n")

	first := gt.R1(uc.Publish(ctx, id)).NoError(t)
	gt.False(t, first.Skipped)
	gt.V(t, len(first.ContentRef)).Equal(64)
	gt.True(t, first.Size > 0)

	handle := gt.R1(env.index.Open(ctx, "alice")).NoError(t)
	var entry model.IndexEntry
	gt.NoError(t, handle.Get(ctx, "demo.git", &entry))
	gt.V(t, entry.ContentRef).Equal(first.ContentRef)
	gt.V(t, entry.Size).Equal(first.Size)
	gt.True(t, entry.PublishedAt.Equal(now))

	t.Run("stored content is the bundle", func(t *testing.T) {
		rc := gt.R1(env.store.Get(ctx, first.ContentRef)).NoError(t)
		defer safe.Close(rc)
		data := gt.R1(io.ReadAll(rc)).NoError(t)
		gt.V(t, int64(len(data))).Equal(first.Size)
		gt.True(t, strings.HasPrefix(string(data), "# v2 git bundle"))
	})

	t.Run("new branch moves the record", func(t *testing.T) {
		pushCommit(t, local.Path, "dev", "# dev\n")
		second := gt.R1(uc.Publish(ctx, id)).NoError(t)
		gt.V(t, second.ContentRef).NotEqual(first.ContentRef)

		gt.NoError(t, handle.Get(ctx, "demo.git", &entry))
		gt.V(t, entry.ContentRef).Equal(second.ContentRef)
	})

	t.Run("deleting every ref keeps the record and warns", func(t *testing.T) {
		gt.NoError(t, handle.Get(ctx, "demo.git", &entry))
		published := entry.ContentRef

		gitRun(t, local.Path, "update-ref", "-d", "refs/heads/main")
		gitRun(t, local.Path, "update-ref", "-d", "refs/heads/dev")

		var logs bytes.Buffer
		logCtx := logging.With(ctx, slog.New(slog.NewJSONHandler(&logs, nil)))
		result := gt.R1(uc.Publish(logCtx, id)).NoError(t)
		gt.True(t, result.Skipped)

		gt.NoError(t, handle.Get(ctx, "demo.git", &entry))
		gt.V(t, entry.ContentRef).Equal(published)
		gt.True(t, strings.Contains(logs.String(), `"level":"WARN"`))
		gt.True(t, strings.Contains(logs.String(), published.String()))
	})
}

func TestPublishSkipsEmptyRepository(t *testing.T) {
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "empty"}

	uc, env := newTestUseCase(t)
	gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})).NoError(t)

	result := gt.R1(uc.Publish(ctx, id)).NoError(t)
	gt.True(t, result.Skipped)

	handle := gt.R1(env.index.Open(ctx, "alice")).NoError(t)
	var entry model.IndexEntry
	gt.True(t, errors.Is(handle.Get(ctx, "empty.git", &entry), repository.ErrNotFound))
}

func TestPublishMissingRepository(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Publish(context.Background(), model.RepositoryIdentity{OwnerID: "alice", RepoName: "nope"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrPublishFailure))
	gt.True(t, errors.Is(err, types.ErrRepoNotFound))
}

func TestPublishStoreFailureKeepsIndex(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	errUnavailable := errors.New("store unavailable")
	store := &mock.ContentStoreMock{
		PutFunc: func(ctx context.Context, r io.Reader) (types.ContentRef, error) {
			return "", errUnavailable
		},
	}
	uc, env := newTestUseCase(t, infra.WithContentStore(store))

	oldRef := types.ContentRef(strings.Repeat("b", 64))
	handle := gt.R1(env.index.Open(ctx, "alice")).NoError(t)
	gt.NoError(t, handle.Put(ctx, "demo.git", &model.IndexEntry{ContentRef: oldRef, Size: 10}))

	// a local copy exists, so the index record is not hydrated
	seed := model.RepositoryIdentity{OwnerID: "alice", RepoName: "seed"}
	local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: seed, CreateIfMissing: true})).NoError(t)
	pushCommit(t, local.Path, "main", "# seed\n")
	gitRun(t, t.TempDir(), "clone", "--quiet", "--bare", local.Path, filepath.Join(filepath.Dir(local.Path), "demo.git"))

	_, err := uc.Publish(ctx, id)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrPublishFailure))
	gt.True(t, errors.Is(err, errUnavailable))
	gt.A(t, store.PutCalls()).Length(1)

	var entry model.IndexEntry
	gt.NoError(t, handle.Get(ctx, "demo.git", &entry))
	gt.V(t, entry.ContentRef).Equal(oldRef)
}

func TestPublishAudit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	id := model.RepositoryIdentity{OwnerID: "alice", RepoName: "demo"}

	var inserted []any
	bq := &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, nil
		},
		CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
			return nil
		},
		InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
			inserted = append(inserted, data)
			return nil
		},
	}
	uc, _ := newTestUseCase(t, infra.WithBigQuery(bq))

	local := gt.R1(uc.EnsureLocal(ctx, &model.ResolveInput{Identity: id, CreateIfMissing: true})).NoError(t)
	pushCommit(t, local.Path, "main", "# hello\n")

	result := gt.R1(uc.Publish(ctx, id)).NoError(t)

	gt.A(t, bq.CreateTableCalls()).Length(1)
	gt.A(t, inserted).Length(1)
	record, ok := inserted[0].(*model.PublishEventRecord)
	gt.True(t, ok)
	gt.V(t, record.Owner).Equal(types.OwnerID("alice"))
	gt.V(t, record.Repo).Equal(types.RepoName("demo"))
	gt.V(t, record.ContentRef).Equal(result.ContentRef)
	gt.V(t, record.Size).Equal(result.Size)

	t.Run("audit failure does not fail publish", func(t *testing.T) {
		bq.InsertFunc = func(ctx context.Context, schema bigquery.Schema, data any) error {
			return errors.New("quota exceeded")
		}
		gt.R1(uc.Publish(ctx, id)).NoError(t)
	})
}

func TestCreateOrUpdatePublishTable(t *testing.T) {
	ctx := context.Background()
	event := &model.PublishEvent{Owner: "alice", Repo: "demo"}

	t.Run("table exists with the same schema", func(t *testing.T) {
		schema := gt.R1(usecase.CreateOrUpdatePublishTableForTest(ctx, &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
		}, event)).NoError(t)

		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{Schema: schema}, nil
			},
		}
		gt.R1(usecase.CreateOrUpdatePublishTableForTest(ctx, bq, event)).NoError(t)
		gt.A(t, bq.GetMetadataCalls()).Length(1)
	})

	t.Run("table exists with an older schema", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{
						{Name: "owner", Type: bigquery.StringFieldType},
					},
					ETag: "etag-1",
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				gt.V(t, eTag).Equal("etag-1")
				gt.True(t, len(md.Schema) > 1)
				return nil
			},
		}
		schema := gt.R1(usecase.CreateOrUpdatePublishTableForTest(ctx, bq, event)).NoError(t)
		gt.A(t, bq.UpdateTableCalls()).Length(1)
		gt.True(t, len(schema) > 1)
	})

	t.Run("metadata error", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("permission denied")
			},
		}
		_, err := usecase.CreateOrUpdatePublishTableForTest(ctx, bq, event)
		gt.Error(t, err)
	})
}
