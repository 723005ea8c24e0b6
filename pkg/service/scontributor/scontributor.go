package scontributor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/model/mcontributor"
)

var ErrNoContributorFound = errors.New("no contributor found")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ContributorService resolves contributors by name. Names compare
// case-insensitively (COLLATE NOCASE column plus unique index), so
// "Riot" and "riot" are the same contributor.
type ContributorService struct {
	q DBTX
}

func New(q DBTX) ContributorService {
	return ContributorService{q: q}
}

func (s ContributorService) TX(tx *sql.Tx) ContributorService {
	return ContributorService{q: tx}
}

func (s ContributorService) GetByID(ctx context.Context, id idwrap.IDWrap) (mcontributor.Contributor, error) {
	var c mcontributor.Contributor
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name FROM contributors WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return mcontributor.Contributor{}, ErrNoContributorFound
	}
	if err != nil {
		return mcontributor.Contributor{}, fmt.Errorf("get contributor: %w", err)
	}
	return c, nil
}

func (s ContributorService) GetByName(ctx context.Context, name string) (mcontributor.Contributor, error) {
	var c mcontributor.Contributor
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name FROM contributors WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return mcontributor.Contributor{}, ErrNoContributorFound
	}
	if err != nil {
		return mcontributor.Contributor{}, fmt.Errorf("get contributor by name: %w", err)
	}
	return c, nil
}

// GetByNameOrCreate looks a contributor up by name and creates one if absent.
// It never fails with ErrNoContributorFound: a patch referencing an unknown
// name materializes the contributor. A race with a concurrent insert resolves
// through the unique index plus a re-read.
func (s ContributorService) GetByNameOrCreate(ctx context.Context, name string) (mcontributor.Contributor, error) {
	c, err := s.GetByName(ctx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNoContributorFound) {
		return mcontributor.Contributor{}, err
	}

	c = mcontributor.Contributor{ID: idwrap.NewNow(), Name: name}
	_, err = s.q.ExecContext(ctx,
		`INSERT INTO contributors (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
		c.ID, c.Name)
	if err != nil {
		return mcontributor.Contributor{}, fmt.Errorf("create contributor: %w", err)
	}
	// Re-read so a conflict-suppressed insert still yields the winning row.
	return s.GetByName(ctx, name)
}
