package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"gorm.io/gorm"
)

// OutboxRecord es la fila de la tabla outbox.
type OutboxRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateType string    `gorm:"type:text;not null"`
	AggregateID   string    `gorm:"type:text;not null"`
	EventType     string    `gorm:"type:text;not null"`
	Payload       []byte    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
	Processed     bool      `gorm:"not null;default:false;index"`
}

func (OutboxRecord) TableName() string {
	return "outbox"
}

// OutboxRepo implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepo struct {
	db *gorm.DB
}

func NewOutboxRepo(db *gorm.DB) *OutboxRepo {
	return &OutboxRepo{db: db}
}

// InsertOutboxTx guarda el evento dentro de la transacción de la escritura.
func InsertOutboxTx(tx *gorm.DB, evt sharedDomain.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	rec := OutboxRecord{
		ID:            evt.ID,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.EventType,
		Payload:       payload,
		CreatedAt:     evt.CreatedAt,
	}
	return tx.Create(&rec).Error
}

// FetchPendingOutbox obtiene los eventos no procesados, los más antiguos primero.
func (r *OutboxRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	var rows []OutboxRecord
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]sharedDomain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]interface{}
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", row.ID, err)
		}
		events = append(events, sharedDomain.OutboxEvent{
			ID:            row.ID,
			AggregateType: row.AggregateType,
			AggregateID:   row.AggregateID,
			EventType:     row.EventType,
			Payload:       payload,
			CreatedAt:     row.CreatedAt,
			Processed:     row.Processed,
		})
	}
	return events, nil
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&OutboxRecord{}).Where("id = ?", id).Update("processed", true)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepo)(nil)
