package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// AggregateRef es el payload de los eventos que solo identifican el agregado (borrados).
type AggregateRef struct {
	ID string `json:"id"`
}

// Envelope envuelve un payload tipado con su tipo de evento y clave de partición.
type Envelope struct {
	IntegrationEvent
	Key string `json:"key"`
}

func (e Envelope) PartitionKey() string {
	return e.Key
}
