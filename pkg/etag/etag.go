// Package etag computes content-derived version tokens for optimistic
// concurrency control. The token is a digest of the entity's full serialized
// state, so any observable field change changes the token; there is no
// separate version counter to keep in sync.
package etag

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrPreconditionFailed is returned when a caller-supplied token no longer
// matches the entity's current token.
var ErrPreconditionFailed = errors.New("precondition failed: stale version token")

// Digest generates a deterministic sha256 token for v. JSON marshaling keeps
// the byte stream stable for a given struct shape (map keys are sorted).
func Digest(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for digest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// CheckPrecondition compares the freshly computed token of v against the
// caller's expected token. It must be called on state read inside the same
// transaction that applies the mutation, otherwise two writers can both pass
// the check against the same stale token.
func CheckPrecondition(v any, expected string) error {
	current, err := Digest(v)
	if err != nil {
		return err
	}
	if current != expected {
		return ErrPreconditionFailed
	}
	return nil
}
