package margin

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

const (
	// DefaultBatchSize concurrent quote pairs per batch, together with
	// DefaultBatchDelay, keeps aggregate request volume under the
	// rating API's 600 requests/minute ceiling.
	DefaultBatchSize  = 50
	DefaultBatchDelay = 500 * time.Millisecond
)

// ShipmentPricer prices one shipment; see Pricer.Price for the
// nil/nil skip convention.
type ShipmentPricer interface {
	Price(ctx context.Context, rec db.Shipment) (*ShipmentResult, error)
}

// RunStats counts shipment outcomes for a run. Priced + Skipped +
// Failed = Total on a run that was not cancelled.
type RunStats struct {
	Total   int `json:"total"`
	Priced  int `json:"priced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Report is the terminal output of a run: finalized per-customer
// summaries plus outcome counts. Partial success is the normal terminal
// state.
type Report struct {
	Customers []*CustomerSummary `json:"customers"`
	Stats     RunStats           `json:"stats"`
}

// Engine schedules shipment pricing in sequential batches. Shipments
// within a batch run concurrently under a semaphore sized to the batch;
// a cooldown between batches throttles the external request rate.
type Engine struct {
	pricer     ShipmentPricer
	batchSize  int
	batchDelay time.Duration

	// sleep is swapped out by tests to observe cooldowns.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewEngine(pricer ShipmentPricer, batchSize int, batchDelay time.Duration) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchDelay <= 0 {
		batchDelay = DefaultBatchDelay
	}

	return &Engine{
		pricer:     pricer,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		sleep:      sleepContext,
	}
}

type shipmentOutcome struct {
	customer string
	result   *ShipmentResult
}

// Run prices every shipment and folds the results into per-customer
// summaries. Batch N fully completes, cooldown included, before batch
// N+1 starts. Cancelling the context stops new batches promptly;
// shipments already in flight finish and their results are discarded.
func (e *Engine) Run(ctx context.Context, shipments []db.Shipment) (*Report, error) {
	if len(shipments) == 0 {
		return nil, errors.New("no shipments to price")
	}

	batches := partition(shipments, e.batchSize)
	slog.Info("starting margin discovery run",
		"shipments", len(shipments),
		"batches", len(batches),
		"batch_size", e.batchSize,
		"batch_delay", e.batchDelay,
	)
	startTime := time.Now()

	// A single consumer goroutine owns the aggregator; workers never
	// touch the customer map directly.
	results := make(chan shipmentOutcome)
	agg := NewAggregator()
	aggDone := make(chan struct{})
	go func() {
		defer close(aggDone)
		for outcome := range results {
			agg.Add(outcome.customer, outcome.result)
		}
	}()

	stats := RunStats{Total: len(shipments)}
	var mu sync.Mutex

	sem := semaphore.NewWeighted(int64(e.batchSize))

	for i, batch := range batches {
		if ctx.Err() != nil {
			slog.Info("run cancelled, not starting batch", "batch", i)
			break
		}

		var wg sync.WaitGroup
		for _, rec := range batch {
			wg.Add(1)
			go func(rec db.Shipment) {
				defer wg.Done()

				if err := sem.Acquire(ctx, 1); err != nil {
					mu.Lock()
					stats.Skipped++
					mu.Unlock()
					return
				}
				defer sem.Release(1)

				result, err := e.pricer.Price(ctx, rec)

				mu.Lock()
				switch {
				case err != nil:
					stats.Failed++
				case result == nil:
					stats.Skipped++
				case ctx.Err() != nil:
					// Finished after cancellation; the result is
					// discarded.
					stats.Skipped++
				default:
					stats.Priced++
				}
				mu.Unlock()

				if err != nil {
					slog.Warn("shipment pricing failed", "shipment_id", rec.ID, "error", err)
					return
				}
				if result == nil || ctx.Err() != nil {
					return
				}

				results <- shipmentOutcome{customer: rec.CustomerName, result: result}
			}(rec)
		}
		wg.Wait()

		if i < len(batches)-1 {
			if err := e.sleep(ctx, e.batchDelay); err != nil {
				break
			}
		}
	}

	close(results)
	<-aggDone

	report := &Report{Customers: agg.Finalize(), Stats: stats}
	slog.Info("margin discovery run complete",
		"priced", stats.Priced,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"customers", len(report.Customers),
		"duration", time.Since(startTime),
	)

	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	return report, nil
}

// partition splits shipments into consecutive batches of size; the last
// batch may be shorter.
func partition(shipments []db.Shipment, size int) [][]db.Shipment {
	var batches [][]db.Shipment
	for start := 0; start < len(shipments); start += size {
		end := start + size
		if end > len(shipments) {
			end = len(shipments)
		}
		batches = append(batches, shipments[start:end])
	}
	return batches
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
