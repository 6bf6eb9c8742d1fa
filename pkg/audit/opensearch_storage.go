package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// DefaultIndex is the OpenSearch index decision events are written to when
// no index name is given.
const DefaultIndex = "acp-decisions"

// OpenSearchStorage indexes decision events into OpenSearch, one document
// per decision, keyed by event ID. Pass an *opensearch.Client; the parameter
// is the transport interface so tests can substitute a fake.
type OpenSearchStorage struct {
	client opensearchapi.Transport
	index  string
}

// NewOpenSearchStorage creates a storage writing to the given index.
func NewOpenSearchStorage(client opensearchapi.Transport, index string) *OpenSearchStorage {
	if client == nil {
		panic("audit: opensearch client cannot be nil")
	}
	if index == "" {
		index = DefaultIndex
	}
	return &OpenSearchStorage{client: client, index: index}
}

func (s *OpenSearchStorage) Store(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Join(ErrIndexingFailed, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: event.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrIndexingFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexingFailed, res.Status())
	}
	return nil
}

// StoreBatch writes events through the bulk API in a single round trip.
func (s *OpenSearchStorage) StoreBatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, event := range events {
		meta, err := json.Marshal(map[string]any{
			"index": map[string]string{"_index": s.index, "_id": event.ID},
		})
		if err != nil {
			return errors.Join(ErrIndexingFailed, err)
		}
		body, err := json.Marshal(event)
		if err != nil {
			return errors.Join(ErrIndexingFailed, err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(body)
		buf.WriteByte('\n')
	}

	res, err := opensearchapi.BulkRequest{Body: &buf}.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrIndexingFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexingFailed, res.Status())
	}
	return nil
}
