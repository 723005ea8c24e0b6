// Package screator manages the many-to-many creator set between items and
// contributors.
package screator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/model/mcontributor"
)

var ErrCreatorNotFound = errors.New("creator association not found")

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type CreatorService struct {
	q DBTX
}

func New(q DBTX) CreatorService {
	return CreatorService{q: q}
}

func (s CreatorService) TX(tx *sql.Tx) CreatorService {
	return CreatorService{q: tx}
}

// Create associates a contributor with an item as a creator. Associating an
// already-associated pair is a no-op success: membership is a set.
func (s CreatorService) Create(ctx context.Context, itemID, contributorID idwrap.IDWrap) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO item_contributors (item_id, contributor_id) VALUES (?, ?)`,
		itemID, contributorID)
	if err != nil {
		return fmt.Errorf("create creator: %w", err)
	}
	return nil
}

// Delete removes a creator association. Deleting an absent pair fails with
// ErrCreatorNotFound so the caller can surface the bad reference.
func (s CreatorService) Delete(ctx context.Context, itemID, contributorID idwrap.IDWrap) error {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM item_contributors WHERE item_id = ? AND contributor_id = ?`,
		itemID, contributorID)
	if err != nil {
		return fmt.Errorf("delete creator: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete creator rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

// ListByItemID returns the creator set of an item. Order carries no meaning;
// name order keeps responses stable.
func (s CreatorService) ListByItemID(ctx context.Context, itemID idwrap.IDWrap) ([]mcontributor.Contributor, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT c.id, c.name
		 FROM item_contributors ic
		 JOIN contributors c ON c.id = ic.contributor_id
		 WHERE ic.item_id = ?
		 ORDER BY c.name`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	creators := []mcontributor.Contributor{}
	for rows.Next() {
		var c mcontributor.Contributor
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		creators = append(creators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creators: %w", err)
	}
	return creators, nil
}
