package sitem

import (
	"context"
	"fmt"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/medialink"
	"github.com/tierlab/ranklist/pkg/model/mitem"
)

// CreateItemParams is the input for creating a list item. Position 0 appends
// to the end of the list; any other value inserts there, shifting the tail up
// by one (conceptually a move-in from position N+1).
type CreateItemParams struct {
	Name        string
	Position    int
	Requirement int
	Verifier    string
	Publisher   string
	MediaLink   *string
	Creators    []string
}

// Create inserts a new item at the requested position. Must run inside a
// transaction.
func (s ItemService) Create(ctx context.Context, params CreateItemParams) (mitem.FullItem, error) {
	if params.Requirement < 0 || params.Requirement > 100 {
		return mitem.FullItem{}, ErrInvalidRequirement
	}

	var link *string
	if params.MediaLink != nil {
		validated, err := medialink.Validate(*params.MediaLink)
		if err != nil {
			return mitem.FullItem{}, err
		}
		link = &validated
	}

	verifier, err := s.contributors.GetByNameOrCreate(ctx, params.Verifier)
	if err != nil {
		return mitem.FullItem{}, err
	}
	publisher, err := s.contributors.GetByNameOrCreate(ctx, params.Publisher)
	if err != nil {
		return mitem.FullItem{}, err
	}

	maximal, err := s.engine.MaxPosition(ctx)
	if err != nil {
		return mitem.FullItem{}, err
	}
	position := params.Position
	if position == 0 {
		position = maximal + 1
	}
	if err := s.engine.MakeRoom(ctx, position); err != nil {
		return mitem.FullItem{}, err
	}

	item := mitem.Item{
		ID:          idwrap.NewNow(),
		Position:    position,
		Name:        params.Name,
		MediaLink:   link,
		Requirement: params.Requirement,
		Verifier:    verifier,
		Publisher:   publisher,
	}
	_, err = s.q.ExecContext(ctx,
		`INSERT INTO items (id, position, name, media_link, requirement, verifier_id, publisher_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Position, item.Name, item.MediaLink, item.Requirement,
		item.Verifier.ID, item.Publisher.ID)
	if err != nil {
		return mitem.FullItem{}, fmt.Errorf("insert item: %w", err)
	}

	for _, name := range params.Creators {
		creator, err := s.contributors.GetByNameOrCreate(ctx, name)
		if err != nil {
			return mitem.FullItem{}, err
		}
		if err := s.creators.Create(ctx, item.ID, creator.ID); err != nil {
			return mitem.FullItem{}, err
		}
	}

	creators, err := s.creators.ListByItemID(ctx, item.ID)
	if err != nil {
		return mitem.FullItem{}, err
	}

	s.log.InfoContext(ctx, "created item",
		"item", item.ID.String(), "position", item.Position, "name", item.Name)
	return mitem.FullItem{Item: item, Creators: creators}, nil
}

// Delete removes an item and compacts the position space, keeping the
// 1..N invariant. Must run inside a transaction.
func (s ItemService) Delete(ctx context.Context, item mitem.Item) error {
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM item_contributors WHERE item_id = ?`, item.ID); err != nil {
		return fmt.Errorf("delete item creators: %w", err)
	}
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM items WHERE id = ?`, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := s.engine.Compact(ctx, item.Position); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "deleted item",
		"item", item.ID.String(), "position", item.Position)
	return nil
}
