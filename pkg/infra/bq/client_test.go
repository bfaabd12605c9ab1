package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/degit-io/degit-riptide/pkg/domain/model"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/bq"
	"github.com/degit-io/degit-riptide/pkg/utils/testutil"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
)

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()
	tblName := types.BQTableID(time.Now().Format("publish_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GCPProject(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)
	defer func() { gt.NoError(t, client.Close()) }()

	schema := gt.R1(bqs.Infer(model.PublishEvent{})).NoError(t)

	t.Run("missing table has no metadata", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.V(t, md).Equal(nil)
	})

	t.Run("create table and insert publish event", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))

		now := time.Now().UTC()
		record := &model.PublishEventRecord{
			PublishEvent: model.PublishEvent{
				RequestID:  types.NewRequestID(),
				Owner:      "alice",
				Repo:       "project",
				ContentRef: "0123abcd",
				Size:       1024,
				Timestamp:  now,
			},
			Timestamp: now.UnixMicro(),
		}
		gt.NoError(t, client.Insert(ctx, schema, record))
	})
}

func TestProtoFieldJSONName(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  string
	}{
		"keeps valid names": {
			input: "content_ref",
			want:  "content_ref",
		},
		"renames invalid names": {
			input: "ruby-advisory-db",
			want:  "col_cnVieS1hZHZpc29yeS1kYg",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	raw := []byte(`{"labels":{"with-dash":3,"plain":2}}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	labels, ok := payload["labels"].(map[string]any)
	gt.True(t, ok)
	gt.V(t, labels[bq.ProtoFieldJSONName("with-dash")]).Equal(json.Number("3"))
	gt.V(t, labels["plain"]).Equal(json.Number("2"))
	_, found := labels["with-dash"]
	gt.False(t, found)
}

func TestEncodeRow(t *testing.T) {
	schema := bigquery.Schema{
		{Name: "owner", Type: bigquery.StringFieldType},
		{Name: "size", Type: bigquery.IntegerFieldType},
	}
	d, p, err := bq.BuildDescriptor(schema)
	gt.NoError(t, err)
	gt.V(t, p.GetName()).NotEqual("")

	t.Run("matching row", func(t *testing.T) {
		row := gt.R1(bq.EncodeRow(d, map[string]any{"owner": "alice", "size": 10})).NoError(t)
		gt.A(t, row).Longer(0)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := bq.EncodeRow(d, map[string]any{"unknown": "x"})
		gt.Error(t, err)
	})
}
