package patch_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/pkg/patch"
)

type body struct {
	Name      patch.Field[string] `json:"name"`
	MediaLink patch.Field[string] `json:"mediaLink"`
	Position  patch.Field[int]    `json:"position"`
}

func TestFieldAbsent(t *testing.T) {
	t.Parallel()

	var b body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &b))

	assert.False(t, b.Name.IsSet())
	assert.False(t, b.MediaLink.IsSet())
	assert.False(t, b.Position.IsSet())
}

func TestFieldNull(t *testing.T) {
	t.Parallel()

	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"mediaLink": null}`), &b))

	assert.True(t, b.MediaLink.IsSet())
	assert.True(t, b.MediaLink.IsNull())
	_, ok := b.MediaLink.Get()
	assert.False(t, ok)
}

func TestFieldValue(t *testing.T) {
	t.Parallel()

	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bloodbath","position":3}`), &b))

	name, ok := b.Name.Get()
	require.True(t, ok)
	assert.Equal(t, "Bloodbath", name)
	assert.False(t, b.Name.IsNull())

	pos, ok := b.Position.Get()
	require.True(t, ok)
	assert.Equal(t, 3, pos)
}

func TestFieldValueAfterNullRoundTrip(t *testing.T) {
	t.Parallel()

	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"mediaLink": null}`), &b))
	require.NoError(t, json.Unmarshal([]byte(`{"mediaLink": "https://example.com/v"}`), &b))

	link, ok := b.MediaLink.Get()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/v", link)
}
