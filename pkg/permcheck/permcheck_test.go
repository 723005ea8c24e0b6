package permcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tierlab/ranklist/pkg/permcheck"
	"github.com/tierlab/ranklist/pkg/stoken"
)

func TestCheckListModerator(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, permcheck.CheckListModerator(stoken.RoleUser), permcheck.ErrPermissionDenied)
	assert.NoError(t, permcheck.CheckListModerator(stoken.RoleListModerator))
	assert.NoError(t, permcheck.CheckListModerator(stoken.RoleListAdmin))
}

func TestCheckListAdmin(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, permcheck.CheckListAdmin(stoken.RoleUser), permcheck.ErrPermissionDenied)
	assert.ErrorIs(t, permcheck.CheckListAdmin(stoken.RoleListModerator), permcheck.ErrPermissionDenied)
	assert.NoError(t, permcheck.CheckListAdmin(stoken.RoleListAdmin))
}
