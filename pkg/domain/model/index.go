package model

import (
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
)

// IndexEntry is the value recorded for "<repoName>.git" in an owner's namespace.
type IndexEntry struct {
	ContentRef  types.ContentRef `firestore:"contentRef" json:"contentRef"`
	Size        int64            `firestore:"size" json:"size"`
	PublishedAt time.Time        `firestore:"publishedAt" json:"publishedAt"`
}

// PublishEvent is the audit record of one completed publish.
type PublishEvent struct {
	RequestID  types.RequestID  `bigquery:"request_id" json:"request_id"`
	Owner      types.OwnerID    `bigquery:"owner" json:"owner"`
	Repo       types.RepoName   `bigquery:"repo" json:"repo"`
	ContentRef types.ContentRef `bigquery:"content_ref" json:"content_ref"`
	Size       int64            `bigquery:"size" json:"size"`
	Timestamp  time.Time        `bigquery:"timestamp" json:"timestamp"`
}

// PublishEventRecord is the row layout written to BigQuery. The storage write
// API takes timestamps as microseconds.
type PublishEventRecord struct {
	PublishEvent
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}

// PublishResult is returned by a successful publish.
type PublishResult struct {
	ContentRef types.ContentRef
	Size       int64
	Skipped    bool
}

// ResolveInput selects the repository to make available locally.
type ResolveInput struct {
	Identity RepositoryIdentity
	// Namespace is the index namespace to resolve from; the owner's own
	// namespace when empty.
	Namespace types.Namespace
	// CreateIfMissing initializes an empty bare repository when neither a
	// local copy nor an index record exists.
	CreateIfMissing bool
}

func (x *ResolveInput) IndexNamespace() types.Namespace {
	if x.Namespace != "" {
		return x.Namespace
	}
	return types.Namespace(x.Identity.OwnerID)
}
