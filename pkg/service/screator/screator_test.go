package screator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/pkg/service/screator"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/testutil"
)

func TestCreateIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	services := base.GetBaseServices()
	item := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})

	creator, err := services.Cs.GetByNameOrCreate(ctx, "Ggb0y")
	require.NoError(t, err)

	require.NoError(t, services.Crs.Create(ctx, item.ID, creator.ID))
	require.NoError(t, services.Crs.Create(ctx, item.ID, creator.ID))

	creators, err := services.Crs.ListByItemID(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, creators, 1)
	assert.Equal(t, "Ggb0y", creators[0].Name)
}

func TestDeleteStrict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	services := base.GetBaseServices()
	item := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})

	creator, err := services.Cs.GetByNameOrCreate(ctx, "Ggb0y")
	require.NoError(t, err)
	require.NoError(t, services.Crs.Create(ctx, item.ID, creator.ID))

	require.NoError(t, services.Crs.Delete(ctx, item.ID, creator.ID))

	// Deleting the now-absent association surfaces the bad reference.
	err = services.Crs.Delete(ctx, item.ID, creator.ID)
	assert.ErrorIs(t, err, screator.ErrCreatorNotFound)
}

func TestListByItemIDEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	services := base.GetBaseServices()
	item := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})

	creators, err := services.Crs.ListByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, creators)
}
