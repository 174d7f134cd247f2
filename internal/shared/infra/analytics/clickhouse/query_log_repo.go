package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// QueryLogRepo implementa la interfaz QueryLogRepository para ClickHouse.
type QueryLogRepo struct {
	db *sql.DB
}

// NewQueryLogRepo abre la conexión y comprueba que responde.
func NewQueryLogRepo(addr, dbName, user, password string) (*QueryLogRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
			Username: user,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &QueryLogRepo{db: conn}, nil
}

// NewQueryLogRepoFromDB reutiliza una conexión ya abierta.
func NewQueryLogRepoFromDB(db *sql.DB) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

// LogBatch inserta un lote de entradas. ClickHouse funciona mejor con inserciones en lotes.
func (r *QueryLogRepo) LogBatch(ctx context.Context, entries []sharedDomain.QueryLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO query_log (entity, operation, conditions, paged, rows, duration_ms, failed, executed_at)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(
			ctx,
			e.Entity,
			e.Operation,
			uint16(e.Conditions),
			boolToUInt8(e.Paged),
			e.Rows,
			e.Duration.Milliseconds(),
			boolToUInt8(e.Failed),
			e.ExecutedAt,
		); err != nil {
			// Si un registro falla, se descarta el lote completo.
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for %s %s: %w", e.Entity, e.Operation, err)
		}
	}

	return tx.Commit()
}

// GetEntityStats agrega el registro por entidad en el intervalo dado.
func (r *QueryLogRepo) GetEntityStats(ctx context.Context, start, end time.Time) ([]sharedDomain.EntityQueryStats, error) {
	query := `
		SELECT
			entity,
			count() AS queries,
			countIf(failed = 1) AS failures,
			avg(duration_ms) AS avg_ms
		FROM query_log
		WHERE executed_at BETWEEN ? AND ?
		GROUP BY entity
		ORDER BY queries DESC
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []sharedDomain.EntityQueryStats
	for rows.Next() {
		var s sharedDomain.EntityQueryStats
		var avgMs float64
		if err := rows.Scan(&s.Entity, &s.Queries, &s.Failures, &avgMs); err != nil {
			return nil, err
		}
		s.AvgDuration = time.Duration(avgMs * float64(time.Millisecond))
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// InitSchema crea la tabla query_log si no existe.
func (r *QueryLogRepo) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS query_log (
			entity      LowCardinality(String),
			operation   LowCardinality(String),
			conditions  UInt16,
			paged       UInt8,
			rows        Int64,
			duration_ms Int64,
			failed      UInt8,
			executed_at DateTime64(3)
		) ENGINE = MergeTree()
		ORDER BY (entity, executed_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to create query_log table: %w", err)
	}
	return nil
}

func (r *QueryLogRepo) Close() error {
	return r.db.Close()
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Verificación en tiempo de compilación.
var _ sharedDomain.QueryLogRepository = (*QueryLogRepo)(nil)
