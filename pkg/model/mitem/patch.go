package mitem

import "github.com/tierlab/ranklist/pkg/patch"

// ItemPatch is the partial-update body for an item. Every field is tri-state;
// only MediaLink accepts an explicit null (clearing the link). For the other
// fields null is a validation error, matching their NOT NULL columns.
type ItemPatch struct {
	Position    patch.Field[int]    `json:"position"`
	Name        patch.Field[string] `json:"name"`
	MediaLink   patch.Field[string] `json:"mediaLink"`
	Verifier    patch.Field[string] `json:"verifier"`
	Publisher   patch.Field[string] `json:"publisher"`
	Requirement patch.Field[int]    `json:"requirement"`
}
