package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
	"go.uber.org/zap"
)

// Worker publica los eventos pendientes de la outbox en el bus, en orden de
// creación, y los marca como procesados.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventPublisher
	eventRegistry map[string]sharedEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventPublisher,
	registry map[string]sharedEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start procesa un lote al arrancar y luego uno por tick, hasta que se cancela ctx.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval), zap.Int("batch_size", w.batchSize))
	w.ProcessBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido.")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica hasta batchSize eventos y devuelve cuántos se marcaron.
// Si el bus falla, el lote se corta: los eventos siguientes pueden ser del mismo
// agregado y no deben adelantarse al que falló.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return 0
	}
	if len(events) == 0 {
		return 0
	}

	published := 0
	for _, evt := range events {
		envelope, err := w.envelopeFor(evt)
		if err != nil {
			// Un evento que no se puede decodificar nunca se publicará; se deja en la tabla.
			w.log.Error("Evento de outbox inválido", zap.String("event_id", evt.ID.String()), zap.String("event_type", evt.EventType), zap.Error(err))
			continue
		}

		if err := w.publisher.Publish(ctx, envelope); err != nil {
			w.log.Warn("⚠️ No se pudo publicar evento, se reintentará",
				zap.String("event_id", evt.ID.String()),
				zap.Error(err),
			)
			break
		}

		if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
			w.log.Warn("⚠️ No se pudo marcar evento como procesado",
				zap.String("event_id", evt.ID.String()),
				zap.Error(err),
			)
			continue
		}
		published++
	}

	w.log.Info("📬 Lote de outbox procesado", zap.Int("pending", len(events)), zap.Int("published", published))
	return published
}

// envelopeFor valida el payload contra el tipo registrado y arma el sobre con la
// clave del agregado.
func (w *Worker) envelopeFor(evt sharedDomain.OutboxEvent) (sharedEvents.Envelope, error) {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		return sharedEvents.Envelope{}, fmt.Errorf("unknown event type %q", evt.EventType)
	}

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedEvents.Envelope{}, fmt.Errorf("encode payload: %w", err)
	}
	typed := reflect.New(metadata.Type).Interface()
	if err := json.Unmarshal(raw, typed); err != nil {
		return sharedEvents.Envelope{}, fmt.Errorf("payload does not match %s: %w", metadata.Type, err)
	}
	data, err := json.Marshal(typed)
	if err != nil {
		return sharedEvents.Envelope{}, fmt.Errorf("encode typed payload: %w", err)
	}

	return sharedEvents.Envelope{
		IntegrationEvent: sharedEvents.IntegrationEvent{
			Type:      evt.EventType,
			Timestamp: evt.CreatedAt,
			Data:      data,
		},
		Key: evt.AggregateID,
	}, nil
}
