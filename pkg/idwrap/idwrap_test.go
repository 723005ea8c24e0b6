package idwrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/pkg/idwrap"
)

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	id := idwrap.NewNow()
	parsed, err := idwrap.NewText(id.String())
	require.NoError(t, err)
	assert.Equal(t, 0, id.Compare(parsed))
}

func TestBytesRoundTrip(t *testing.T) {
	t.Parallel()

	id := idwrap.NewNow()
	parsed, err := idwrap.NewFromBytes(id.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 0, id.Compare(parsed))
}

func TestScanValue(t *testing.T) {
	t.Parallel()

	id := idwrap.NewNow()
	v, err := id.Value()
	require.NoError(t, err)

	var scanned idwrap.IDWrap
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, 0, id.Compare(scanned))

	assert.Error(t, scanned.Scan("not bytes"))
}

func TestNewTextRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := idwrap.NewText("zz")
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	var zero idwrap.IDWrap
	assert.True(t, zero.IsZero())
	assert.False(t, idwrap.NewNow().IsZero())
}
