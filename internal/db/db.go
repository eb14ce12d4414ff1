// Package db owns the MySQL side of the service: a master pool for
// writes and authoritative reads, a slave pool for fan-out reads, and
// the typed statements the leaderboard runs against them.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DB holds the split connection pools. With no dedicated read replica the
// slave DSN simply points at the master and both pools share the server.
type DB struct {
	Master *sql.DB
	Slave  *sql.DB
}

// Open builds both pools and verifies connectivity before returning.
func Open(ctx context.Context, log *zap.Logger, masterDSN, slaveDSN string) (*DB, error) {
	log = log.Named("db")

	master, err := open(ctx, masterDSN)
	if err != nil {
		return nil, fmt.Errorf("master pool: %w", err)
	}
	log.Info("master pool ready")

	slave, err := open(ctx, slaveDSN)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("slave pool: %w", err)
	}
	log.Info("slave pool ready")

	return &DB{Master: master, Slave: slave}, nil
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	pool, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(6 * time.Hour)

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Close releases both pools.
func (d *DB) Close() error {
	merr := d.Master.Close()
	serr := d.Slave.Close()
	if merr != nil {
		return merr
	}
	return serr
}
