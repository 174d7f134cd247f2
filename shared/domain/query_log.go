package domain

import (
	"context"
	"time"
)

// QueryLogEntry es una fila del registro de consultas ejecutadas.
type QueryLogEntry struct {
	Entity     string
	Operation  string // "list" | "count"
	Conditions int
	Paged      bool
	Rows       int64
	Duration   time.Duration
	Failed     bool
	ExecutedAt time.Time
}

// EntityQueryStats agrega el registro por entidad.
type EntityQueryStats struct {
	Entity      string
	Queries     uint64
	Failures    uint64
	AvgDuration time.Duration
}

// QueryLogRepository persiste el registro en un almacén analítico.
type QueryLogRepository interface {
	LogBatch(ctx context.Context, entries []QueryLogEntry) error
	GetEntityStats(ctx context.Context, start, end time.Time) ([]EntityQueryStats, error)
}

// QueryRecorder recibe entradas sin bloquear al que consulta.
type QueryRecorder interface {
	Record(entry QueryLogEntry)
}
