package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/tierlab/ranklist/pkg/model/mitem"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/txutil"
)

// MustCreateItem appends or inserts an item inside its own transaction.
func (b *BaseDB) MustCreateItem(ctx context.Context, t *testing.T, params sitem.CreateItemParams) mitem.FullItem {
	t.Helper()
	if params.Verifier == "" {
		params.Verifier = "verifier"
	}
	if params.Publisher == "" {
		params.Publisher = "publisher"
	}
	var created mitem.FullItem
	err := txutil.Execute(ctx, b.DB, b.Log, func(tx *sql.Tx) error {
		var err error
		created, err = sitem.New(b.DB, b.Log).TX(tx).Create(ctx, params)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return created
}

// MustSeedList appends items named by names, in order, at positions 1..len.
func (b *BaseDB) MustSeedList(ctx context.Context, t *testing.T, names ...string) []mitem.FullItem {
	t.Helper()
	items := make([]mitem.FullItem, 0, len(names))
	for _, name := range names {
		items = append(items, b.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: name, Requirement: 100}))
	}
	return items
}

// Positions reads back the current name-by-position layout of the whole list.
func (b *BaseDB) Positions(ctx context.Context, t *testing.T) []string {
	t.Helper()
	rows, err := b.DB.QueryContext(ctx, `SELECT name FROM items ORDER BY position`)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	return names
}
