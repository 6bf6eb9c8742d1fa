package audit

import (
	"context"
	"sync"
	"time"
)

// AsyncOptions configures the batching and buffering behavior of the async
// storage. The settings trade memory usage and worst-case latency against
// storage round trips.
type AsyncOptions struct {
	BufferSize     int           // Max events queued in memory before falling back to sync writes
	BatchSize      int           // Target events per batch
	BatchTimeout   time.Duration // Max time a partial batch waits before flushing
	StorageTimeout time.Duration // Per-batch storage timeout
}

// AsyncStorage batches decision events before handing them to a batch-capable
// storage. High-traffic services record one event per request; writing them
// one at a time would turn the audit trail into the bottleneck.
type AsyncStorage struct {
	writer  BatchWriter
	events  chan pendingEvent
	done    chan struct{}
	wg      sync.WaitGroup
	options AsyncOptions
}

type pendingEvent struct {
	event  Event
	result chan error
}

// NewAsyncStorage wraps a batch-capable storage (OpenSearchStorage,
// SlogStorage) with background batching. The returned close function flushes
// buffered events; call it during shutdown so decisions are not lost.
func NewAsyncStorage(writer BatchWriter, opts AsyncOptions) (*AsyncStorage, func(context.Context) error) {
	if writer == nil {
		panic("audit: batch writer cannot be nil")
	}

	if opts.BufferSize == 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout == 0 {
		opts.BatchTimeout = 100 * time.Millisecond
	}
	if opts.StorageTimeout == 0 {
		opts.StorageTimeout = 5 * time.Second
	}

	as := &AsyncStorage{
		writer:  writer,
		events:  make(chan pendingEvent, opts.BufferSize),
		done:    make(chan struct{}),
		options: opts,
	}

	as.wg.Add(1)
	go as.worker()

	closeFunc := func(ctx context.Context) error {
		return as.Close(ctx)
	}

	return as, closeFunc
}

// Store queues the event and waits for its batch to be written. A full
// buffer bypasses batching and writes synchronously instead of dropping the
// event.
func (as *AsyncStorage) Store(ctx context.Context, event Event) error {
	result := make(chan error, 1)

	select {
	case as.events <- pendingEvent{event: event, result: result}:
		select {
		case err := <-result:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-as.done:
		return ErrStorageNotAvailable
	default:
		return as.writer.StoreBatch(ctx, []Event{event})
	}
}

func (as *AsyncStorage) worker() {
	defer as.wg.Done()

	batch := make([]Event, 0, as.options.BatchSize)
	results := make([]chan error, 0, as.options.BatchSize)
	ticker := time.NewTicker(as.options.BatchTimeout)
	defer ticker.Stop()

	// flush writes the accumulated batch and notifies all waiting callers.
	// Storage runs under a background context so a caller timeout cannot
	// cancel a batch that carries other callers' events.
	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), as.options.StorageTimeout)
		defer cancel()

		err := as.writer.StoreBatch(ctx, batch)

		for _, result := range results {
			select {
			case result <- err:
			default:
			}
		}

		clear(batch)
		clear(results)
		batch = batch[:0]
		results = results[:0]
	}

	for {
		select {
		case pending := <-as.events:
			batch = append(batch, pending.event)
			results = append(results, pending.result)

			if len(batch) >= as.options.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-as.done:
			// Drain remaining events before exiting.
			close(as.events)
			for pending := range as.events {
				batch = append(batch, pending.event)
				results = append(results, pending.result)
			}
			flush()
			return
		}
	}
}

// Close shuts the storage down, flushing buffered events. The context bounds
// the shutdown; when it expires unflushed events may be lost.
func (as *AsyncStorage) Close(ctx context.Context) error {
	close(as.done)

	flushed := make(chan struct{})
	go func() {
		as.wg.Wait()
		close(flushed)
	}()

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
