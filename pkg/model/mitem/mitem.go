package mitem

import (
	"time"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/model/mcontributor"
)

// Item is one entry of the ranked list. Position is dense and 1-indexed: for N
// items the positions in use are exactly 1..N. It is only ever changed through
// the reorder engine.
type Item struct {
	ID          idwrap.IDWrap            `json:"id"`
	Position    int                      `json:"position"`
	Name        string                   `json:"name"`
	MediaLink   *string                  `json:"mediaLink"`
	Requirement int                      `json:"requirement"`
	Verifier    mcontributor.Contributor `json:"verifier"`
	Publisher   mcontributor.Contributor `json:"publisher"`
}

// FullItem is an Item together with its creator set, the shape handlers
// serialize and the version token digests.
type FullItem struct {
	Item
	Creators []mcontributor.Contributor `json:"creators"`
}

func (i Item) GetCreatedTime() time.Time {
	return i.ID.Time()
}
