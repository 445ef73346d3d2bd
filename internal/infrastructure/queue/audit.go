package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher routes audit entries to a fixed set of writer goroutines,
// sharded by actor so one actor's trail stays ordered. Writes happen off the
// request path: console latency never waits on the audit store.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded writers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all writer goroutines. They stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry on the worker responsible for its actor. When the
// worker's buffer is full the entry is dropped with a warning rather than
// blocking the caller.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	ch := d.workers[d.shardIndex(entry.Actor)]
	select {
	case ch <- entry:
	default:
		d.log.Warn().Str("actor", entry.Actor).Str("action", entry.Action).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			if err := d.repo.Insert(insertCtx, entry); err != nil {
				d.log.Error().Err(err).
					Str("actor", entry.Actor).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			cancel()
		}
	}
}

// NopRecorder discards entries. Used when the audit store is not configured.
type NopRecorder struct{}

func (NopRecorder) Record(domain.AuditEntry) {}
