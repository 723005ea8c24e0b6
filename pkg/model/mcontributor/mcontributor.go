package mcontributor

import (
	"time"

	"github.com/tierlab/ranklist/pkg/idwrap"
)

// Contributor is a person referenced by list items: verifier, publisher or
// creator. Contributors are looked up by name, case-insensitively, and created
// on demand.
type Contributor struct {
	ID   idwrap.IDWrap `json:"id"`
	Name string        `json:"name"`
}

func (c Contributor) GetCreatedTime() time.Time {
	return c.ID.Time()
}
