package bq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Client is the publish audit sink. Rows are appended through the storage
// write API; table management goes through the regular BigQuery API.
type Client struct {
	tables  *bigquery.Client
	writer  *managedwriter.Client
	project types.GCPProject
	dataset types.BQDatasetID
	table   types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, project types.GCPProject, dataset types.BQDatasetID, table types.BQTableID, options ...option.ClientOption) (*Client, error) {
	writer, err := managedwriter.NewClient(ctx, project.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery storage writer", goerr.V("project", project))
	}

	tables, err := bigquery.NewClient(ctx, project.String(), options...)
	if err != nil {
		safe.Close(writer)
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("project", project))
	}

	return &Client{
		tables:  tables,
		writer:  writer,
		project: project,
		dataset: dataset,
		table:   table,
	}, nil
}

func (x *Client) Close() error {
	safe.Close(x.writer)
	return x.tables.Close()
}

func (x *Client) ref() *bigquery.Table {
	return x.tables.Dataset(x.dataset.String()).Table(x.table.String())
}

func (x *Client) values() []goerr.Option {
	return []goerr.Option{goerr.V("dataset", x.dataset), goerr.V("table", x.table)}
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.ref().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create audit table", x.values()...)
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. A missing table yields nil
// metadata and no error.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.ref().Metadata(ctx)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get audit table metadata", x.values()...)
	}
	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.ref().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update audit table", append(x.values(), goerr.V("eTag", eTag))...)
	}
	return nil
}

// Insert implements interfaces.BigQuery. data is encoded through JSON into a
// dynamic proto message built from schema, then appended as one row.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any) error {
	msgDesc, descProto, err := buildDescriptor(schema)
	if err != nil {
		return err
	}

	row, err := encodeRow(msgDesc, data)
	if err != nil {
		return err
	}

	stream, err := x.writer.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project.String(), x.dataset.String(), x.table.String()),
		),
		managedwriter.WithSchemaDescriptor(descProto),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to open managed stream", x.values()...)
	}
	defer safe.Close(stream)

	result, err := stream.AppendRows(ctx, [][]byte{row})
	if err != nil {
		return goerr.Wrap(err, "failed to append audit row", x.values()...)
	}
	if _, err := result.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "audit row was not accepted", x.values()...)
	}

	return nil
}

func buildDescriptor(schema bigquery.Schema) (protoreflect.MessageDescriptor, *descriptorpb.DescriptorProto, error) {
	storageSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema")
	}

	desc, err := adapt.StorageSchemaToProto2Descriptor(storageSchema, "root")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, nil, goerr.New("adapted descriptor is not a message descriptor")
	}

	descProto, err := adapt.NormalizeDescriptor(msgDesc)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	return msgDesc, descProto, nil
}

func encodeRow(msgDesc protoreflect.MessageDescriptor, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal audit row", goerr.V("data", data))
	}
	sanitized, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sanitize audit row", goerr.V("raw", string(raw)))
	}

	msg := dynamicpb.NewMessage(msgDesc)
	if err := protojson.Unmarshal(sanitized, msg); err != nil {
		return nil, goerr.Wrap(err, "failed to decode audit row into proto message", goerr.V("raw", string(raw)))
	}

	row, err := proto.Marshal(msg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal proto message")
	}
	return row, nil
}

// sanitizeProtoJSON renames object keys that are not valid proto field names.
func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return json.Marshal(sanitizeValue(data))
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, value := range val {
			out[protoFieldJSONName(key)] = sanitizeValue(value)
		}
		return out
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

func protoFieldJSONName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.RawStdEncoding.EncodeToString([]byte(name))
	encoded = strings.NewReplacer("+", "_", "/", "_").Replace(encoded)
	return "col_" + encoded
}
