package config

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/repository/firestore"
	"github.com/degit-io/degit-riptide/pkg/repository/memory"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  string
	databaseID string
	collection string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID of the replicated index (optional)",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEGIT_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEGIT_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore root collection of the index",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEGIT_FIRESTORE_COLLECTION"),
			Value:       firestore.DefaultCollection,
			Destination: &x.collection,
		},
	}
}

func (x *Firestore) Enabled() bool {
	return x.projectID != ""
}

func (x *Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("databaseID", x.databaseID),
		slog.Any("collection", x.collection),
	)
}

// NewIndex connects to Firestore, or falls back to a process-local index
// that is lost on exit when no project is configured.
func (x *Firestore) NewIndex(ctx context.Context) (interfaces.Index, func(), error) {
	if !x.Enabled() {
		logging.From(ctx).Warn("firestore is not configured, using in-memory index")
		return memory.New(), func() {}, nil
	}

	index, err := firestore.New(ctx, x.projectID, x.databaseID, x.collection)
	if err != nil {
		return nil, nil, err
	}
	return index, func() { safe.Close(index) }, nil
}
