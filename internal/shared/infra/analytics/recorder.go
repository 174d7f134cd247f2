package analytics

import (
	"context"
	"sync/atomic"
	"time"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"go.uber.org/zap"
)

// BatchRecorder acumula entradas del registro de consultas y las envía por lotes.
// Record nunca bloquea: si el buffer está lleno, la entrada se descarta.
type BatchRecorder struct {
	repo      sharedDomain.QueryLogRepository
	entries   chan sharedDomain.QueryLogEntry
	batchSize int
	interval  time.Duration
	dropped   atomic.Int64
	log       *zap.Logger
}

var _ sharedDomain.QueryRecorder = (*BatchRecorder)(nil)

func NewBatchRecorder(repo sharedDomain.QueryLogRepository, bufferSize, batchSize int, interval time.Duration, log *zap.Logger) *BatchRecorder {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchRecorder{
		repo:      repo,
		entries:   make(chan sharedDomain.QueryLogEntry, bufferSize),
		batchSize: batchSize,
		interval:  interval,
		log:       log,
	}
}

func (r *BatchRecorder) Record(entry sharedDomain.QueryLogEntry) {
	select {
	case r.entries <- entry:
	default:
		r.dropped.Add(1)
	}
}

// Dropped devuelve cuántas entradas se han descartado por buffer lleno.
func (r *BatchRecorder) Dropped() int64 {
	return r.dropped.Load()
}

// Start consume el buffer hasta que se cancela ctx. Al parar, vacía lo pendiente.
func (r *BatchRecorder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("🚀 Query log recorder iniciado", zap.Duration("interval", r.interval), zap.Int("batch_size", r.batchSize))

	batch := make([]sharedDomain.QueryLogEntry, 0, r.batchSize)
	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case e := <-r.entries:
					batch = append(batch, e)
				default:
					break drain
				}
			}
			flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			r.flush(flushCtx, batch)
			cancel()
			r.log.Info("🛑 Query log recorder detenido.", zap.Int64("dropped", r.Dropped()))
			return
		case e := <-r.entries:
			batch = append(batch, e)
			if len(batch) >= r.batchSize {
				r.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			r.flush(ctx, batch)
			batch = batch[:0]
		}
	}
}

func (r *BatchRecorder) flush(ctx context.Context, batch []sharedDomain.QueryLogEntry) {
	if len(batch) == 0 {
		return
	}
	out := make([]sharedDomain.QueryLogEntry, len(batch))
	copy(out, batch)
	if err := r.repo.LogBatch(ctx, out); err != nil {
		r.log.Warn("⚠️ No se pudo guardar el lote del registro de consultas", zap.Int("entries", len(out)), zap.Error(err))
	}
}
