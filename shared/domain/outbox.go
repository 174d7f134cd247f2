package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent es un evento guardado en la misma transacción que el cambio que lo
// produce. El relayer lo publica después y lo marca como procesado.
type OutboxEvent struct {
	ID            uuid.UUID   `json:"id"`
	AggregateType string      `json:"aggregate_type"` // topic del agregado ("pet")
	AggregateID   string      `json:"aggregate_id"`   // clave de partición
	EventType     string      `json:"event_type"`     // "pet.adopted"
	Payload       interface{} `json:"payload"`
	CreatedAt     time.Time   `json:"created_at"`
	Processed     bool        `json:"processed"`
}

// NewOutboxEvent crea un evento pendiente con id y fecha nuevos.
func NewOutboxEvent(aggregateType, aggregateID, eventType string, payload interface{}) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

// OutboxRepository es lo único que el relayer necesita de la tabla outbox.
// FetchPendingOutbox devuelve los no procesados, del más antiguo al más nuevo.
type OutboxRepository interface {
	FetchPendingOutbox(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error
}
