//nolint:revive // exported
package sitem

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/model/mitem"
	"github.com/tierlab/ranklist/pkg/reorder"
	"github.com/tierlab/ranklist/pkg/service/scontributor"
	"github.com/tierlab/ranklist/pkg/service/screator"
)

var (
	ErrNoItemFound        = errors.New("no item found")
	ErrInvalidRequirement = errors.New("requirement must be between 0 and 100")
	ErrUnexpectedNull     = errors.New("null value for non-nullable field")
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ItemService owns item reads and the patch merger. Mutations must go through
// a TX-bound service so the reorder engine and the relation resolver share the
// caller's transaction.
type ItemService struct {
	q            DBTX
	engine       reorder.Engine
	contributors scontributor.ContributorService
	creators     screator.CreatorService
	log          *slog.Logger
}

func New(q DBTX, log *slog.Logger) ItemService {
	return ItemService{
		q:            q,
		engine:       reorder.New(q, log),
		contributors: scontributor.New(q),
		creators:     screator.New(q),
		log:          log,
	}
}

func (s ItemService) TX(tx *sql.Tx) ItemService {
	return New(tx, s.log)
}

func (s ItemService) Engine() reorder.Engine { return s.engine }

const itemColumns = `i.id, i.position, i.name, i.media_link, i.requirement,
	v.id, v.name, p.id, p.name`

const itemFrom = ` FROM items i
	JOIN contributors v ON v.id = i.verifier_id
	JOIN contributors p ON p.id = i.publisher_id`

func scanItem(row interface{ Scan(dest ...any) error }) (mitem.Item, error) {
	var item mitem.Item
	err := row.Scan(
		&item.ID, &item.Position, &item.Name, &item.MediaLink, &item.Requirement,
		&item.Verifier.ID, &item.Verifier.Name,
		&item.Publisher.ID, &item.Publisher.Name,
	)
	return item, err
}

func (s ItemService) GetByID(ctx context.Context, id idwrap.IDWrap) (mitem.Item, error) {
	item, err := scanItem(s.q.QueryRowContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return mitem.Item{}, ErrNoItemFound
	}
	if err != nil {
		return mitem.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s ItemService) GetByPosition(ctx context.Context, position int) (mitem.Item, error) {
	item, err := scanItem(s.q.QueryRowContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.position = ?`, position))
	if errors.Is(err, sql.ErrNoRows) {
		return mitem.Item{}, ErrNoItemFound
	}
	if err != nil {
		return mitem.Item{}, fmt.Errorf("get item by position: %w", err)
	}
	return item, nil
}

// GetFullByID returns the item together with its creator set.
func (s ItemService) GetFullByID(ctx context.Context, id idwrap.IDWrap) (mitem.FullItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return mitem.FullItem{}, err
	}
	creators, err := s.creators.ListByItemID(ctx, item.ID)
	if err != nil {
		return mitem.FullItem{}, err
	}
	return mitem.FullItem{Item: item, Creators: creators}, nil
}

func (s ItemService) GetFullByPosition(ctx context.Context, position int) (mitem.FullItem, error) {
	item, err := s.GetByPosition(ctx, position)
	if err != nil {
		return mitem.FullItem{}, err
	}
	creators, err := s.creators.ListByItemID(ctx, item.ID)
	if err != nil {
		return mitem.FullItem{}, err
	}
	return mitem.FullItem{Item: item, Creators: creators}, nil
}

// ListParams pages over the position space; After/Before are exclusive
// position bounds, zero values mean unbounded.
type ListParams struct {
	After  int
	Before int
	Limit  int
}

const defaultListLimit = 50

func (s ItemService) List(ctx context.Context, params ListParams) ([]mitem.Item, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}
	before := params.Before
	if before <= 0 {
		before = int(^uint(0) >> 1)
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.position > ? AND i.position < ?
		 ORDER BY i.position LIMIT ?`, params.After, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []mitem.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s ItemService) MaxPosition(ctx context.Context) (int, error) {
	return s.engine.MaxPosition(ctx)
}
