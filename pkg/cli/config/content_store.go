package config

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/cas"
	"github.com/degit-io/degit-riptide/pkg/infra/cas/gcs"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ContentStore selects the backend of the content-addressed store: a Cloud
// Storage bucket when one is given, a local directory otherwise.
type ContentStore struct {
	dir       string
	gcsBucket types.GCSBucket
	gcsPrefix string
}

func (x *ContentStore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-dir",
			Usage:       "Local directory of the content store",
			Category:    "ContentStore",
			Sources:     cli.EnvVars("DEGIT_CONTENT_DIR"),
			Destination: &x.dir,
		},
		&cli.StringFlag{
			Name:        "content-gcs-bucket",
			Usage:       "Cloud Storage bucket of the content store",
			Category:    "ContentStore",
			Sources:     cli.EnvVars("DEGIT_CONTENT_GCS_BUCKET"),
			Destination: (*string)(&x.gcsBucket),
		},
		&cli.StringFlag{
			Name:        "content-gcs-prefix",
			Usage:       "Object prefix in the content store bucket",
			Category:    "ContentStore",
			Value:       "degit/",
			Sources:     cli.EnvVars("DEGIT_CONTENT_GCS_PREFIX"),
			Destination: &x.gcsPrefix,
		},
	}
}

// NewStore returns the configured store and a function releasing its
// resources. defaultDir is used when neither a bucket nor a directory is set.
func (x *ContentStore) NewStore(ctx context.Context, defaultDir string) (*cas.Store, func(), error) {
	if x.gcsBucket != "" {
		backend, err := gcs.New(ctx, x.gcsBucket, x.gcsPrefix)
		if err != nil {
			return nil, nil, err
		}
		return cas.New(backend), func() { safe.Close(backend) }, nil
	}

	dir := x.dir
	if dir == "" {
		dir = defaultDir
	}
	if dir == "" {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "content-dir or content-gcs-bucket is required")
	}

	backend, err := cas.NewFileBackend(dir)
	if err != nil {
		return nil, nil, err
	}
	return cas.New(backend), func() {}, nil
}

func (x *ContentStore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
		slog.String("gcsBucket", x.gcsBucket.String()),
		slog.String("gcsPrefix", x.gcsPrefix),
	)
}
