package sitem_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/pkg/medialink"
	"github.com/tierlab/ranklist/pkg/model/mitem"
	"github.com/tierlab/ranklist/pkg/patch"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/testutil"
	"github.com/tierlab/ranklist/pkg/txutil"
)

func applyPatch(ctx context.Context, t *testing.T, base *testutil.BaseDB, item *mitem.Item, p mitem.ItemPatch) error {
	t.Helper()
	services := base.GetBaseServices()
	return txutil.Execute(ctx, base.DB, base.Log, func(tx *sql.Tx) error {
		return services.Is.TX(tx).ApplyPatch(ctx, item, p)
	})
}

func TestApplyPatchEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Zodiac", Requirement: 82})
	services := base.GetBaseServices()

	item := created.Item
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{}))

	got, err := services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Item, got)
}

func TestApplyPatchAllFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	base.MustSeedList(ctx, t, "A", "B", "C")
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Zodiac", Requirement: 82})
	services := base.GetBaseServices()

	item := created.Item
	err := applyPatch(ctx, t, base, &item, mitem.ItemPatch{
		Position:    patch.NewValue(2),
		Name:        patch.NewValue("Zodiac Rebirth"),
		MediaLink:   patch.NewValue("https://youtu.be/dQw4w9WgXcQ"),
		Verifier:    patch.NewValue("Cyclic"),
		Publisher:   patch.NewValue("Riot"),
		Requirement: patch.NewValue(60),
	})
	require.NoError(t, err)

	got, err := services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Position)
	assert.Equal(t, "Zodiac Rebirth", got.Name)
	require.NotNil(t, got.MediaLink)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", *got.MediaLink)
	assert.Equal(t, "Cyclic", got.Verifier.Name)
	assert.Equal(t, "Riot", got.Publisher.Name)
	assert.Equal(t, 60, got.Requirement)

	// The in-memory item mirrors the stored state.
	assert.Equal(t, got, item)
	assert.Equal(t, []string{"A", "Zodiac Rebirth", "B", "C"}, base.Positions(ctx, t))
}

func TestApplyPatchMediaLinkTriState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	link := "https://vimeo.com/12345"
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{
		Name: "Cataclysm", Requirement: 70, MediaLink: &link,
	})
	services := base.GetBaseServices()
	item := created.Item

	// Absent field leaves the link untouched.
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{Name: patch.NewValue("Cataclysm v2")}))
	got, err := services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MediaLink)

	// Explicit null clears it.
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{MediaLink: patch.NewNull[string]()}))
	got, err = services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MediaLink)

	// A value replaces it, after validation.
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{MediaLink: patch.NewValue("https://vimeo.com/777")}))
	got, err = services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MediaLink)
	assert.Equal(t, "https://vimeo.com/777", *got.MediaLink)
}

func TestApplyPatchInvalidMediaLink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})

	item := created.Item
	err := applyPatch(ctx, t, base, &item, mitem.ItemPatch{MediaLink: patch.NewValue("ftp://nope")})
	assert.ErrorIs(t, err, medialink.ErrInvalidMediaLink)
}

func TestApplyPatchInvalidRequirementRollsBackEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})
	services := base.GetBaseServices()

	// Name change is valid but the requirement fails: nothing may stick.
	item := created.Item
	err := applyPatch(ctx, t, base, &item, mitem.ItemPatch{
		Name:        patch.NewValue("Renamed"),
		Requirement: patch.NewValue(101),
	})
	require.ErrorIs(t, err, sitem.ErrInvalidRequirement)

	got, err := services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cataclysm", got.Name)
	assert.Equal(t, 70, got.Requirement)
}

func TestApplyPatchNullOnNonNullableField(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})

	item := created.Item
	err := applyPatch(ctx, t, base, &item, mitem.ItemPatch{Name: patch.NewNull[string]()})
	assert.ErrorIs(t, err, sitem.ErrUnexpectedNull)
}

func TestApplyPatchNameCaseInsensitiveNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})
	services := base.GetBaseServices()

	item := created.Item
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{Name: patch.NewValue("CATACLYSM")}))

	// Same name under case folding: the stored value keeps its original casing.
	got, err := services.Is.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cataclysm", got.Name)
}

func TestApplyPatchResolverCreatesContributor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	created := base.MustCreateItem(ctx, t, sitem.CreateItemParams{Name: "Cataclysm", Requirement: 70})
	services := base.GetBaseServices()

	item := created.Item
	require.NoError(t, applyPatch(ctx, t, base, &item, mitem.ItemPatch{Verifier: patch.NewValue("Brand New Player")}))

	resolved, err := services.Cs.GetByName(ctx, "brand new player")
	require.NoError(t, err)
	assert.Equal(t, resolved.ID, item.Verifier.ID)
}

func TestGetByPositionAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	defer base.Close()
	base.MustSeedList(ctx, t, "A", "B", "C", "D", "E")
	services := base.GetBaseServices()

	got, err := services.Is.GetByPosition(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)

	_, err = services.Is.GetByPosition(ctx, 9)
	assert.ErrorIs(t, err, sitem.ErrNoItemFound)

	page, err := services.Is.List(ctx, sitem.ListParams{After: 1, Before: 5, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "B", page[0].Name)
	assert.Equal(t, "C", page[1].Name)
}
