// Package loader runs the bulk load and search latency benchmark against a
// series of indices.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/osbench/internal/domain"
	"github.com/vburojevic/osbench/internal/generator"
	"github.com/vburojevic/osbench/internal/search"
	"github.com/vburojevic/osbench/internal/stats"
)

// Client is the set of cluster operations the loader drives
type Client interface {
	Info(ctx context.Context) (search.ClusterInfo, error)
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, body []byte) error
	PutSettings(ctx context.Context, index string, body []byte) error
	IndexStats(ctx context.Context, index string) (domain.IndexStats, error)
	Search(ctx context.Context, index string, body []byte) (search.SearchResult, error)
	Bulk(ctx context.Context, index string, docs <-chan search.BulkDocument, opts search.BulkOptions) (*domain.BulkReport, error)
}

// DocumentSink receives a copy of every generated document
type DocumentSink interface {
	Write(doc domain.Document) error
}

// SearchBody is the query timed by the search benchmark
var SearchBody = []byte(`{"size":10}`)

const (
	defaultProgressEvery = 100
	queueSize            = 16
)

// Options configures a load run
type Options struct {
	IndexPrefix string
	IndexCount  int
	Records     int
	ReadRounds  int
	Mode        search.MappingMode
	FieldLimit  int
	FlushBytes  int

	// Sink, when set, also receives every generated document
	Sink DocumentSink
	// ProgressEvery logs a progress line after this many successes
	ProgressEvery int
	// OnIndex is called after each index finishes, successfully or not
	OnIndex func(r *domain.IndexReport)
}

// IndexName returns the name of the idx-th index (1-based)
func (o Options) IndexName(idx int) string {
	return o.IndexPrefix + "-" + strconv.Itoa(idx)
}

// Loader runs load passes. It is not safe for concurrent use.
type Loader struct {
	client Client
	gen    *generator.Generator
	opts   Options
	log    *zap.Logger
	clk    clock.Clock
}

// New creates a Loader. gen supplies documents; a nil logger discards output
// and a nil clock uses the wall clock.
func New(client Client, gen *generator.Generator, opts Options, log *zap.Logger, clk clock.Clock) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaultProgressEvery
	}
	return &Loader{client: client, gen: gen, opts: opts, log: log, clk: clk}
}

// Run loads and benchmarks IndexCount indices in order. A failed index is
// recorded and the run moves on; only cancellation aborts the run.
func (l *Loader) Run(ctx context.Context) (*domain.RunReport, error) {
	run := &domain.RunReport{RunID: ulid.Make().String()}
	start := l.clk.Now()
	defer func() { run.Duration = l.clk.Since(start) }()

	for idx := 1; idx <= l.opts.IndexCount; idx++ {
		index := l.opts.IndexName(idx)
		l.log.Info("processing index",
			zap.String("index", index),
			zap.Int("n", idx),
			zap.Int("of", l.opts.IndexCount))

		report, err := l.LoadIndex(ctx, index)
		if err == nil {
			report.Search, err = l.BenchmarkSearch(ctx, index, l.opts.ReadRounds)
		}
		if err != nil {
			report.Error = err.Error()
			report.Err = err
			l.log.Error("index failed", zap.String("index", index), zap.Error(err))
		}
		run.Indices = append(run.Indices, report)
		if l.opts.OnIndex != nil {
			l.opts.OnIndex(report)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return run, ctxErr
		}
	}

	return run, nil
}

// LoadIndex ensures index exists with the configured mapping, raises its
// field limit, bulk inserts Records generated documents and reads back the
// index stats.
func (l *Loader) LoadIndex(ctx context.Context, index string) (*domain.IndexReport, error) {
	report := &domain.IndexReport{Index: index}

	info, err := l.client.Info(ctx)
	if err != nil {
		return report, fmt.Errorf("connect: %w", err)
	}
	l.log.Info("connected to OpenSearch", zap.String("version", info.Version), zap.String("cluster", info.ClusterName))

	exists, err := l.client.IndexExists(ctx, index)
	if err != nil {
		return report, err
	}
	if exists {
		l.log.Info("index already exists", zap.String("index", index))
	} else {
		body, err := l.opts.Mode.MappingBody()
		if err != nil {
			return report, err
		}
		l.log.Info("creating index", zap.String("index", index), zap.Stringer("mapping_mode", l.opts.Mode))
		if err := l.client.CreateIndex(ctx, index, body); err != nil {
			return report, err
		}
		report.Created = true
	}

	l.log.Debug("updating index settings", zap.String("index", index), zap.Int("field_limit", l.opts.FieldLimit))
	if err := l.client.PutSettings(ctx, index, search.SettingsBody(l.opts.FieldLimit)); err != nil {
		return report, err
	}

	l.log.Info("bulk inserting",
		zap.String("index", index),
		zap.Int("documents", l.opts.Records),
		zap.Int("fields", l.gen.NumFields()))

	report.Bulk, err = l.bulk(ctx, index)
	if err != nil {
		return report, err
	}
	l.log.Info("bulk insert complete",
		zap.String("index", index),
		zap.Int("succeeded", report.Bulk.Succeeded),
		zap.Int("failed", report.Bulk.Failed),
		zap.Int("total", report.Bulk.Total()),
		zap.Duration("took", report.Bulk.Duration))

	indexStats, err := l.client.IndexStats(ctx, index)
	if err != nil {
		return report, err
	}
	report.Stats = &indexStats
	return report, nil
}

// bulk streams generated documents into the bulk writer. Generation runs in
// its own goroutine so the writer can flush while the next batch is built.
func (l *Loader) bulk(ctx context.Context, index string) (*domain.BulkReport, error) {
	docs := make(chan search.BulkDocument, queueSize)
	group, gctx := errgroup.WithContext(ctx)
	start := l.clk.Now()

	group.Go(func() error {
		defer close(docs)
		for i := range l.opts.Records {
			doc := l.gen.Document()
			if l.opts.Sink != nil {
				if err := l.opts.Sink.Write(doc); err != nil {
					return fmt.Errorf("save document %d: %w", i, err)
				}
			}
			l.log.Debug("record generated", zap.Int("n", i+1), zap.Int("of", l.opts.Records))

			select {
			case docs <- search.BulkDocument{ID: strconv.Itoa(i), Body: doc}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var report *domain.BulkReport
	group.Go(func() error {
		var err error
		report, err = l.client.Bulk(gctx, index, docs, search.BulkOptions{
			FlushBytes: l.opts.FlushBytes,
			OnSuccess: func(_ string, succeeded int) {
				if succeeded%l.opts.ProgressEvery == 0 {
					l.log.Info("inserted documents", zap.String("index", index), zap.Int("count", succeeded))
				}
			},
			OnFailure: func(id, reason string) {
				l.log.Warn("document failed", zap.String("index", index), zap.String("id", id), zap.String("reason", reason))
			},
		})
		return err
	})

	err := group.Wait()
	if report == nil {
		report = &domain.BulkReport{Index: index}
	}
	report.Duration = l.clk.Since(start)
	if err != nil {
		return report, fmt.Errorf("bulk insert: %w", err)
	}
	return report, nil
}

// BenchmarkSearch times rounds identical searches against index
func (l *Loader) BenchmarkSearch(ctx context.Context, index string, rounds int) (*domain.SearchReport, error) {
	report := &domain.SearchReport{Index: index}
	if rounds <= 0 {
		return report, nil
	}

	l.log.Info("running search benchmark", zap.String("index", index), zap.Int("rounds", rounds))

	latencies := make([]float64, 0, rounds)
	for i := range rounds {
		start := l.clk.Now()
		res, err := l.client.Search(ctx, index, SearchBody)
		elapsed := l.clk.Since(start)
		if err != nil {
			return report, fmt.Errorf("search %d: %w", i+1, err)
		}

		ms := float64(elapsed) / float64(time.Millisecond)
		latencies = append(latencies, ms)
		report.Samples = append(report.Samples, domain.SearchSample{LatencyMs: ms, Hits: res.TotalHits})
		l.log.Debug("search", zap.Int("n", i+1), zap.Float64("ms", ms), zap.Int64("hits", res.TotalHits))
	}

	s := stats.Summarize(latencies)
	report.AverageMs = s.Mean
	report.MedianMs = s.Median
	report.MinMs = s.Min
	report.MaxMs = s.Max
	report.TotalMs = s.Sum

	l.log.Info("search benchmark complete",
		zap.String("index", index),
		zap.Float64("avg_ms", s.Mean),
		zap.Float64("min_ms", s.Min),
		zap.Float64("max_ms", s.Max))
	return report, nil
}

// ErrNoIndices is returned when the run is configured with no indices
var ErrNoIndices = errors.New("index count must be at least 1")

// Validate checks the options before a run
func (o Options) Validate() error {
	if o.IndexCount < 1 {
		return ErrNoIndices
	}
	if o.IndexPrefix == "" {
		return errors.New("index prefix must not be empty")
	}
	if o.Records < 0 {
		return errors.New("records must not be negative")
	}
	return nil
}
