package pagination

import (
	"context"
	"sync"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for detail batches.
var (
	batchRoundsTotal = promauto.With(metrics.Registry).NewCounter(prometheus.CounterOpts{
		Name: "catalog_batch_rounds_total",
		Help: "Total number of detail batch rounds executed",
	})

	batchItemsTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_batch_items_total",
		Help: "Detail fetches by outcome (resolved, failed, skipped)",
	}, []string{"outcome"})

	batchRoundDuration = promauto.With(metrics.Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_batch_round_duration_seconds",
		Help:    "Duration of one detail batch round in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
)

// Config holds batch fetcher configuration
type Config struct {
	// BatchSize is the number of detail requests in flight at once.
	BatchSize int
	// Timeout per detail fetch, zero means none
	Timeout time.Duration
}

// DefaultConfig returns the default batch configuration
func DefaultConfig() Config {
	return Config{
		BatchSize: 5,
	}
}

// DetailFetcher resolves the detail record of a single item.
type DetailFetcher interface {
	Detail(ctx context.Context, stub catalog.ItemStub) (catalog.ItemDetail, error)
}

// Batch is the outcome of one completed round. Details[i] belongs at
// index Offset+i of the caller's sequence.
type Batch struct {
	Round   int
	Offset  int
	Details []catalog.ItemDetail
}

// BatchFetcher resolves item details in sequential rounds of concurrent
// requests.
type BatchFetcher struct {
	fetcher DetailFetcher
	config  Config
	logger  zerolog.Logger
}

// NewBatchFetcher creates a new batch fetcher
func NewBatchFetcher(fetcher DetailFetcher, config Config) *BatchFetcher {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.Timeout < 0 {
		config.Timeout = 0
	}

	return &BatchFetcher{
		fetcher: fetcher,
		config:  config,
		logger:  logging.NewLogger(logging.ComponentBatch),
	}
}

// BatchSize returns the effective batch size.
func (bf *BatchFetcher) BatchSize() int {
	return bf.config.BatchSize
}

// FetchDetails resolves every stub, BatchSize at a time. A round starts only
// after the previous one finished. onBatch, if set, is called after each
// round so callers can merge progress in place.
//
// The returned slice always has len(stubs) entries in input order. Items
// whose fetch failed, or that were never attempted because ctx ended, keep
// their stub.
func (bf *BatchFetcher) FetchDetails(ctx context.Context, stubs []catalog.ItemStub, onBatch func(Batch)) []catalog.ItemDetail {
	return bf.fetch(ctx, stubs, bf.config.BatchSize, onBatch)
}

// FetchAll resolves every stub in a single round, all requests at once.
func (bf *BatchFetcher) FetchAll(ctx context.Context, stubs []catalog.ItemStub) []catalog.ItemDetail {
	return bf.fetch(ctx, stubs, len(stubs), nil)
}

func (bf *BatchFetcher) fetch(ctx context.Context, stubs []catalog.ItemStub, size int, onBatch func(Batch)) []catalog.ItemDetail {
	start := time.Now()

	results := make([]catalog.ItemDetail, len(stubs))
	for i, stub := range stubs {
		results[i] = catalog.StubDetail(stub)
	}
	if len(stubs) == 0 {
		return results
	}

	round := 0
	for offset := 0; offset < len(stubs); offset += size {
		if err := ctx.Err(); err != nil {
			skipped := len(stubs) - offset
			batchItemsTotal.WithLabelValues("skipped").Add(float64(skipped))
			bf.logger.Debug().
				Err(err).
				Int("resolved_until", offset).
				Int("skipped", skipped).
				Msg("Detail fetch stopped (context cancelled)")
			break
		}

		end := offset + size
		if end > len(stubs) {
			end = len(stubs)
		}
		round++

		batch := bf.round(ctx, round, stubs[offset:end])
		copy(results[offset:end], batch)

		if onBatch != nil {
			onBatch(Batch{Round: round, Offset: offset, Details: cloneDetails(batch)})
		}
	}

	bf.logger.Debug().
		Int("items", len(stubs)).
		Int("rounds", round).
		Dur("duration", time.Since(start)).
		Msg("Detail fetch complete")

	return results
}

// round fetches one group concurrently and waits for all of it.
func (bf *BatchFetcher) round(ctx context.Context, round int, group []catalog.ItemStub) []catalog.ItemDetail {
	start := time.Now()
	out := make([]catalog.ItemDetail, len(group))

	var wg sync.WaitGroup
	for i, stub := range group {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = bf.fetchOne(ctx, round, stub)
		}()
	}
	wg.Wait()

	batchRoundsTotal.Inc()
	batchRoundDuration.Observe(time.Since(start).Seconds())

	return out
}

// fetchOne never fails: errors are logged and the stub is returned.
func (bf *BatchFetcher) fetchOne(ctx context.Context, round int, stub catalog.ItemStub) catalog.ItemDetail {
	if bf.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bf.config.Timeout)
		defer cancel()
	}

	detail, err := bf.fetcher.Detail(ctx, stub)
	if err != nil {
		batchItemsTotal.WithLabelValues("failed").Inc()
		bf.logger.Warn().
			Err(err).
			Str("item", stub.Name).
			Int("round", round).
			Msg("Detail fetch failed")
		return catalog.StubDetail(stub)
	}

	batchItemsTotal.WithLabelValues("resolved").Inc()
	detail.ItemStub = stub
	return detail
}

func cloneDetails(in []catalog.ItemDetail) []catalog.ItemDetail {
	out := make([]catalog.ItemDetail, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
