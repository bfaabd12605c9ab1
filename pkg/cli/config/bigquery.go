package config

import (
	"context"
	"log/slog"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/bq"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// BigQuery configures the optional publish audit table.
type BigQuery struct {
	projectID types.GCPProject
	datasetID types.BQDatasetID
	tableID   types.BQTableID
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID of the publish audit table (optional)",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("DEGIT_BIGQUERY_PROJECT_ID"),
			Destination: (*string)(&x.projectID),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("DEGIT_BIGQUERY_DATASET_ID"),
			Destination: (*string)(&x.datasetID),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "publish_events",
			Sources:     cli.EnvVars("DEGIT_BIGQUERY_TABLE_ID"),
			Destination: (*string)(&x.tableID),
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != ""
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
	)
}

// NewClient returns nil without error when the audit table is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, func(), error) {
	if !x.Enabled() {
		return nil, func() {}, nil
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { safe.Close(client) }, nil
}
