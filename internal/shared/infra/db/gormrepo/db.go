package gormrepo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open abre la base relacional. driver es "postgres" o "sqlite".
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: NewZapLogger(log, 200*time.Millisecond)}

	switch driver {
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// SQLite solo admite un escritor a la vez.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", driver)
	}
}
