package etag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/pkg/etag"
)

type payload struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	a, err := etag.Digest(payload{Name: "Sonic Wave", Position: 3})
	require.NoError(t, err)
	b, err := etag.Digest(payload{Name: "Sonic Wave", Position: 3})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDigestChangesWithAnyField(t *testing.T) {
	t.Parallel()

	base, err := etag.Digest(payload{Name: "Sonic Wave", Position: 3})
	require.NoError(t, err)

	renamed, err := etag.Digest(payload{Name: "Sonic Wave Rebirth", Position: 3})
	require.NoError(t, err)
	moved, err := etag.Digest(payload{Name: "Sonic Wave", Position: 4})
	require.NoError(t, err)

	assert.NotEqual(t, base, renamed)
	assert.NotEqual(t, base, moved)
}

func TestCheckPrecondition(t *testing.T) {
	t.Parallel()

	p := payload{Name: "Sonic Wave", Position: 3}
	token, err := etag.Digest(p)
	require.NoError(t, err)

	assert.NoError(t, etag.CheckPrecondition(p, token))

	p.Position = 4
	assert.ErrorIs(t, etag.CheckPrecondition(p, token), etag.ErrPreconditionFailed)
}
