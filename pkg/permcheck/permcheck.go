//nolint:revive // exported
package permcheck

import (
	"errors"

	"github.com/tierlab/ranklist/pkg/stoken"
)

var ErrPermissionDenied = errors.New("permission denied")

// CheckListModerator gates every mutating list operation: only list moderators
// may create, patch or delete items and creator associations. The core
// services assume this gate has already passed and do no authorization of
// their own.
func CheckListModerator(role stoken.Role) error {
	if role < stoken.RoleListModerator {
		return ErrPermissionDenied
	}
	return nil
}

// CheckListAdmin gates destructive operations (item deletion).
func CheckListAdmin(role stoken.Role) error {
	if role < stoken.RoleListAdmin {
		return ErrPermissionDenied
	}
	return nil
}
