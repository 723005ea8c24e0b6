package sitem

import (
	"context"
	"fmt"
	"strings"

	"github.com/tierlab/ranklist/pkg/medialink"
	"github.com/tierlab/ranklist/pkg/model/mcontributor"
	"github.com/tierlab/ranklist/pkg/model/mitem"
	"github.com/tierlab/ranklist/pkg/patch"
)

// ApplyPatch merges the patch into the item, mutating it in place. Fields
// apply in a fixed order: position first (it is independent of the rest and
// fails fast on bad targets), then name, media link, verifier, publisher and
// requirement. Each setter writes only when the new value differs from the
// stored one. Must run inside a transaction; any failure aborts the whole
// patch.
func (s ItemService) ApplyPatch(ctx context.Context, item *mitem.Item, p mitem.ItemPatch) error {
	if to, err := nonNullable(p.Position, "position"); err != nil {
		return err
	} else if p.Position.IsSet() {
		if err := s.engine.Move(ctx, item, to); err != nil {
			return err
		}
	}

	if name, err := nonNullable(p.Name, "name"); err != nil {
		return err
	} else if p.Name.IsSet() {
		if err := s.setName(ctx, item, name); err != nil {
			return err
		}
	}

	if p.MediaLink.IsSet() {
		if link, ok := p.MediaLink.Get(); ok {
			if err := s.setMediaLink(ctx, item, link); err != nil {
				return err
			}
		} else if err := s.removeMediaLink(ctx, item); err != nil {
			return err
		}
	}

	if name, err := nonNullable(p.Verifier, "verifier"); err != nil {
		return err
	} else if p.Verifier.IsSet() {
		verifier, err := s.contributors.GetByNameOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if err := s.setVerifier(ctx, item, verifier); err != nil {
			return err
		}
	}

	if name, err := nonNullable(p.Publisher, "publisher"); err != nil {
		return err
	} else if p.Publisher.IsSet() {
		publisher, err := s.contributors.GetByNameOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if err := s.setPublisher(ctx, item, publisher); err != nil {
			return err
		}
	}

	if requirement, err := nonNullable(p.Requirement, "requirement"); err != nil {
		return err
	} else if p.Requirement.IsSet() {
		if err := s.setRequirement(ctx, item, requirement); err != nil {
			return err
		}
	}

	return nil
}

// nonNullable rejects explicit nulls on fields whose columns are NOT NULL.
func nonNullable[T any](f patch.Field[T], field string) (T, error) {
	if f.IsNull() {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrUnexpectedNull, field)
	}
	v, _ := f.Get()
	return v, nil
}

func (s ItemService) setName(ctx context.Context, item *mitem.Item, name string) error {
	if strings.EqualFold(item.Name, name) {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET name = ? WHERE id = ?`, name, item.ID); err != nil {
		return fmt.Errorf("set name: %w", err)
	}
	item.Name = name
	return nil
}

func (s ItemService) setMediaLink(ctx context.Context, item *mitem.Item, link string) error {
	link, err := medialink.Validate(link)
	if err != nil {
		return err
	}
	if item.MediaLink != nil && *item.MediaLink == link {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET media_link = ? WHERE id = ?`, link, item.ID); err != nil {
		return fmt.Errorf("set media link: %w", err)
	}
	item.MediaLink = &link
	return nil
}

func (s ItemService) removeMediaLink(ctx context.Context, item *mitem.Item) error {
	if item.MediaLink == nil {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET media_link = NULL WHERE id = ?`, item.ID); err != nil {
		return fmt.Errorf("remove media link: %w", err)
	}
	item.MediaLink = nil
	return nil
}

func (s ItemService) setVerifier(ctx context.Context, item *mitem.Item, verifier mcontributor.Contributor) error {
	if verifier.ID.Compare(item.Verifier.ID) == 0 {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET verifier_id = ? WHERE id = ?`, verifier.ID, item.ID); err != nil {
		return fmt.Errorf("set verifier: %w", err)
	}
	item.Verifier = verifier
	return nil
}

func (s ItemService) setPublisher(ctx context.Context, item *mitem.Item, publisher mcontributor.Contributor) error {
	if publisher.ID.Compare(item.Publisher.ID) == 0 {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET publisher_id = ? WHERE id = ?`, publisher.ID, item.ID); err != nil {
		return fmt.Errorf("set publisher: %w", err)
	}
	item.Publisher = publisher
	return nil
}

func (s ItemService) setRequirement(ctx context.Context, item *mitem.Item, requirement int) error {
	if requirement < 0 || requirement > 100 {
		return ErrInvalidRequirement
	}
	if item.Requirement == requirement {
		return nil
	}
	if _, err := s.q.ExecContext(ctx,
		`UPDATE items SET requirement = ? WHERE id = ?`, requirement, item.ID); err != nil {
		return fmt.Errorf("set requirement: %w", err)
	}
	item.Requirement = requirement
	return nil
}
