// Package db opens the SQLite store and applies the embedded schema.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // register the sqlite driver
)

//go:embed schema.sql
var ddl string

// Open opens (or creates) the database at path and applies the schema.
// SQLite allows exactly one writer; capping the pool at a single connection
// turns writer contention into queueing instead of SQLITE_BUSY storms and is
// what makes the write-transaction-first precondition check a critical section.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := CreateTables(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// OpenMem opens a fresh in-memory database, used by tests.
func OpenMem(ctx context.Context) (*sql.DB, func(), error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := CreateTables(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, func() { _ = conn.Close() }, nil
}

// CreateTables applies the embedded DDL statement by statement.
func CreateTables(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}
