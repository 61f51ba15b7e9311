package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchutil"

	"github.com/vburojevic/osbench/internal/domain"
)

// DefaultFlushBytes is the bulk request size threshold
const DefaultFlushBytes = 5 * 1024 * 1024

// maxFailureReasons bounds BulkReport.Failures
const maxFailureReasons = 20

// BulkDocument is one document queued for indexing
type BulkDocument struct {
	ID   string
	Body domain.Document
}

// BulkOptions tunes a bulk load. Callbacks are invoked one at a time.
type BulkOptions struct {
	FlushBytes    int
	FlushInterval time.Duration
	// OnSuccess receives the running success count after each indexed item
	OnSuccess func(id string, succeeded int)
	// OnFailure receives the failure reason for each rejected item
	OnFailure func(id string, reason string)
}

// Bulk indexes every document read from docs until the channel is closed or
// ctx is done. Batching, flushing and retries belong to the bulk indexer;
// this only tallies the per-item outcome.
func (c *Client) Bulk(ctx context.Context, index string, docs <-chan BulkDocument, opts BulkOptions) (*domain.BulkReport, error) {
	flushBytes := opts.FlushBytes
	if flushBytes <= 0 {
		flushBytes = DefaultFlushBytes
	}

	report := &domain.BulkReport{Index: index}
	var (
		mu       sync.Mutex
		flushErr error
	)

	recordFailure := func(id, reason string) {
		mu.Lock()
		defer mu.Unlock()
		report.Failed++
		if len(report.Failures) < maxFailureReasons {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %s", id, reason))
		}
		if opts.OnFailure != nil {
			opts.OnFailure(id, reason)
		}
	}

	bi, err := opensearchutil.NewBulkIndexer(opensearchutil.BulkIndexerConfig{
		Client:        c.os,
		Index:         index,
		NumWorkers:    1,
		FlushBytes:    flushBytes,
		FlushInterval: opts.FlushInterval,
		OnError: func(_ context.Context, err error) {
			mu.Lock()
			defer mu.Unlock()
			if flushErr == nil {
				flushErr = err
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bulk indexer: %w", err)
	}

	start := time.Now()
	var addErr error

loop:
	for {
		select {
		case <-ctx.Done():
			addErr = ctx.Err()
			break loop
		case doc, ok := <-docs:
			if !ok {
				break loop
			}
			body, err := json.Marshal(doc.Body)
			if err != nil {
				recordFailure(doc.ID, "encode: "+err.Error())
				continue
			}
			err = bi.Add(ctx, opensearchutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(body),
				OnSuccess: func(_ context.Context, item opensearchutil.BulkIndexerItem, _ opensearchutil.BulkIndexerResponseItem) {
					mu.Lock()
					defer mu.Unlock()
					report.Succeeded++
					if opts.OnSuccess != nil {
						opts.OnSuccess(item.DocumentID, report.Succeeded)
					}
				},
				OnFailure: func(_ context.Context, item opensearchutil.BulkIndexerItem, res opensearchutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						recordFailure(item.DocumentID, err.Error())
						return
					}
					recordFailure(item.DocumentID, fmt.Sprintf("%s: %s", res.Error.Type, res.Error.Reason))
				},
			})
			if err != nil {
				addErr = fmt.Errorf("queue document %s: %w", doc.ID, err)
				break loop
			}
		}
	}

	// Close flushes whatever is still buffered; use a fresh context so a
	// cancelled load still reports what was already queued.
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
	defer cancel()
	closeErr := bi.Close(closeCtx)
	report.Duration = time.Since(start)

	mu.Lock()
	defer mu.Unlock()
	// whole-request failures are counted by the indexer without per-item callbacks
	if failed := int(bi.Stats().NumFailed); failed > report.Failed {
		report.Failed = failed
	}
	if err := errors.Join(addErr, closeErr); err != nil {
		return report, err
	}
	if flushErr != nil && report.Succeeded == 0 {
		return report, fmt.Errorf("bulk flush: %w", flushErr)
	}
	return report, nil
}
