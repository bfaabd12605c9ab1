package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"cloud.google.com/go/bigquery"
	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/gitrepo"
	"github.com/degit-io/degit-riptide/pkg/repository"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
)

// Publish bundles the local repository, stores the bundle in the content
// store and points the owner's index record at it. The index is written only
// after the bundle is stored, so a failed run leaves the previous record in
// place.
func (x *UseCase) Publish(ctx context.Context, id model.RepositoryIdentity) (*model.PublishResult, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if x.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.publishTimeout)
		defer cancel()
	}

	unlock, err := x.lock(ctx, id)
	if err != nil {
		return nil, classify(types.ErrPublishFailure, err, "failed to publish", goerr.V("repo", id))
	}
	defer unlock()

	result, err := x.publish(ctx, id)
	if err != nil {
		return nil, classify(types.ErrPublishFailure, err, "failed to publish", goerr.V("repo", id))
	}
	return result, nil
}

func (x *UseCase) publish(ctx context.Context, id model.RepositoryIdentity) (*model.PublishResult, error) {
	logger := logging.From(ctx).With(slog.String("repo", id.String()))

	local, err := x.clients.Resolver().Resolve(id)
	if err != nil {
		return nil, err
	}
	if !local.Exists {
		return nil, goerr.Wrap(types.ErrRepoNotFound, "no local repository to publish", goerr.V("path", local.Path))
	}

	hasRefs, err := gitrepo.HasRefs(local.Path)
	if err != nil {
		return nil, err
	}
	if !hasRefs {
		if err := x.warnStaleRecord(ctx, logger, id); err != nil {
			return nil, err
		}
		logger.Info("repository has no refs, skip publishing")
		return &model.PublishResult{Skipped: true}, nil
	}

	// BUNDLE
	tmpDir, err := x.clients.Resolver().TempDir(id)
	if err != nil {
		return nil, err
	}
	defer safe.RemoveAll(tmpDir)

	bundle := filepath.Join(tmpDir, "repo.bundle")
	if err := x.clients.Git().CreateBundle(ctx, local.Path, bundle); err != nil {
		return nil, goerr.Wrap(err, "failed to create bundle")
	}

	// PUBLISH
	f, err := os.Open(filepath.Clean(bundle))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open bundle", goerr.V("path", bundle))
	}
	defer safe.Close(f)

	stat, err := f.Stat()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat bundle", goerr.V("path", bundle))
	}

	ref, err := x.clients.ContentStore().Put(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store bundle")
	}

	// INDEX
	ns := types.Namespace(id.OwnerID)
	handle, err := x.clients.Index().Open(ctx, ns)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index namespace", goerr.V("namespace", ns))
	}

	now := logging.CtxTime(ctx).UTC()
	entry := &model.IndexEntry{
		ContentRef:  ref,
		Size:        stat.Size(),
		PublishedAt: now,
	}
	if err := handle.Put(ctx, id.RepoName.IndexKey(), entry); err != nil {
		return nil, goerr.Wrap(err, "failed to update index record", goerr.V("ref", ref))
	}

	logger.Info("published repository",
		slog.String("ref", ref.String()),
		slog.Int64("size", entry.Size),
	)

	if bq := x.clients.BigQuery(); bq != nil {
		reqID, _ := logging.CtxRequestID(ctx)
		event := &model.PublishEvent{
			RequestID:  reqID,
			Owner:      id.OwnerID,
			Repo:       id.RepoName,
			ContentRef: ref,
			Size:       entry.Size,
			Timestamp:  now,
		}
		if err := insertPublishEvent(ctx, bq, event); err != nil {
			logger.Warn("failed to record publish event", slog.Any("error", err))
		}
	}

	return &model.PublishResult{
		ContentRef: ref,
		Size:       entry.Size,
	}, nil
}

// warnStaleRecord reports an index record left behind after every ref of the
// repository was deleted. The record is kept, so a node without a local copy
// hydrates the deleted refs again.
func (x *UseCase) warnStaleRecord(ctx context.Context, logger *slog.Logger, id model.RepositoryIdentity) error {
	ns := types.Namespace(id.OwnerID)
	handle, err := x.clients.Index().Open(ctx, ns)
	if err != nil {
		return goerr.Wrap(err, "failed to open index namespace", goerr.V("namespace", ns))
	}

	var entry model.IndexEntry
	if err := handle.Get(ctx, id.RepoName.IndexKey(), &entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return goerr.Wrap(err, "failed to read index record")
	}

	logger.Warn("all refs were deleted but the published record remains",
		slog.String("ref", entry.ContentRef.String()),
		slog.Time("published_at", entry.PublishedAt),
	)
	return nil
}

func insertPublishEvent(ctx context.Context, bq interfaces.BigQuery, event *model.PublishEvent) error {
	schema, err := createOrUpdatePublishTable(ctx, bq, event)
	if err != nil {
		return err
	}

	record := &model.PublishEventRecord{
		PublishEvent: *event,
		Timestamp:    event.Timestamp.UnixMicro(),
	}
	if err := bq.Insert(ctx, schema, record); err != nil {
		return goerr.Wrap(err, "failed to insert publish event")
	}
	return nil
}

func createOrUpdatePublishTable(ctx context.Context, bq interfaces.BigQuery, event *model.PublishEvent) (bigquery.Schema, error) {
	schema, err := bqs.Infer(event)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer publish event schema")
	}

	md, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get publish table metadata")
	}
	if md == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
			return nil, goerr.Wrap(err, "failed to create publish table")
		}
		return schema, nil
	}

	if bqs.Equal(md.Schema, schema) {
		return schema, nil
	}

	merged, err := bqs.Merge(md.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge publish table schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{Schema: merged}, md.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update publish table")
	}
	return merged, nil
}
