// Package reorder maintains the dense, gapless, 1-indexed position space of
// the ranked list. For N items the positions in use are exactly 1..N; every
// operation here preserves that invariant or performs no writes at all.
//
// SQLite checks the UNIQUE constraint on items.position per updated row, so a
// plain range shift like "SET position = position + 1" can collide with a row
// the statement has not reached yet. Shifts therefore route through negative
// position space: the affected range is rewritten to the negated target values
// (never colliding with the positive rows), then negated back. The moving row
// is parked at 0, outside both spaces, until its final placement. No two rows
// ever hold the same position at any statement boundary, which is the
// guarantee a concurrent reader needs.
package reorder

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tierlab/ranklist/pkg/model/mitem"
)

// DBTX is the statement surface the engine needs; both *sql.DB and *sql.Tx
// satisfy it. Mutating calls must always run inside an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InvalidPositionError reports a target outside [1, Maximal].
type InvalidPositionError struct {
	Maximal int
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: must be between 1 and %d", e.Maximal)
}

// Engine performs position moves against a statement handle.
type Engine struct {
	q   DBTX
	log *slog.Logger
}

func New(q DBTX, log *slog.Logger) Engine {
	return Engine{q: q, log: log}
}

// TX returns an engine bound to the given transaction.
func (e Engine) TX(tx *sql.Tx) Engine {
	return Engine{q: tx, log: e.log}
}

// MaxPosition returns the highest position in use, i.e. the item count.
func (e Engine) MaxPosition(ctx context.Context) (int, error) {
	var maximal int
	err := e.q.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM items`).Scan(&maximal)
	if err != nil {
		return 0, fmt.Errorf("query max position: %w", err)
	}
	return maximal, nil
}

// Move relocates item to position to, shifting every item between the old and
// new position by exactly one slot. Must run inside a transaction.
func (e Engine) Move(ctx context.Context, item *mitem.Item, to int) error {
	maximal, err := e.MaxPosition(ctx)
	if err != nil {
		return err
	}
	if to < 1 || to > maximal {
		return &InvalidPositionError{Maximal: maximal}
	}

	from := item.Position
	if to == from {
		e.log.WarnContext(ctx, "no-op move", slog.String("item", item.ID.String()), slog.Int("position", to))
		return nil
	}

	// Park the moving row outside the position space so the shift below never
	// lands on it.
	if _, err := e.q.ExecContext(ctx, `UPDATE items SET position = 0 WHERE id = ?`, item.ID); err != nil {
		return fmt.Errorf("vacate position %d: %w", from, err)
	}

	if to > from {
		e.log.DebugContext(ctx, "shifting items toward lower positions",
			slog.Int("from", from), slog.Int("to", to))
		err = e.shift(ctx,
			`UPDATE items SET position = -(position - 1) WHERE position > ? AND position <= ?`, from, to)
	} else {
		e.log.DebugContext(ctx, "shifting items toward higher positions",
			slog.Int("from", from), slog.Int("to", to))
		err = e.shift(ctx,
			`UPDATE items SET position = -(position + 1) WHERE position >= ? AND position < ?`, to, from)
	}
	if err != nil {
		return err
	}

	if _, err := e.q.ExecContext(ctx, `UPDATE items SET position = ? WHERE id = ?`, to, item.ID); err != nil {
		return fmt.Errorf("place at position %d: %w", to, err)
	}

	e.log.InfoContext(ctx, "moved item",
		slog.String("item", item.ID.String()), slog.Int("from", from), slog.Int("to", to))
	item.Position = to
	return nil
}

// MakeRoom opens up position at for a new item by shifting every item at or
// after it up by one. Valid targets are 1..N+1; N+1 appends without writes.
// Must run inside a transaction.
func (e Engine) MakeRoom(ctx context.Context, at int) error {
	maximal, err := e.MaxPosition(ctx)
	if err != nil {
		return err
	}
	if at < 1 || at > maximal+1 {
		return &InvalidPositionError{Maximal: maximal + 1}
	}
	if at == maximal+1 {
		return nil
	}
	return e.shift(ctx,
		`UPDATE items SET position = -(position + 1) WHERE position >= ?`, at)
}

// Compact closes the gap left at position from after a row was deleted,
// shifting every item past it down by one. Must run inside a transaction.
func (e Engine) Compact(ctx context.Context, from int) error {
	return e.shift(ctx,
		`UPDATE items SET position = -(position - 1) WHERE position > ?`, from)
}

// shift rewrites a range into negated target values, then flips the sign back.
func (e Engine) shift(ctx context.Context, query string, args ...any) error {
	if _, err := e.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}
	if _, err := e.q.ExecContext(ctx, `UPDATE items SET position = -position WHERE position < 0`); err != nil {
		return fmt.Errorf("restore shifted positions: %w", err)
	}
	return nil
}
