package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_Version_PointLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(db)
	history := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	item := testutil.NewTestItem("Tracked", testutil.WithID("tr-1"))
	_, err := items.Insert(ctx, item)
	require.NoError(t, err)
	title := "Tracked v2"
	_, err = items.Update(ctx, "tr-1", domain.MainBranch, domain.ItemChanges{Title: &title})
	require.NoError(t, err)

	rec, err := history.Version(ctx, "tr-1", domain.MainBranch, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Tracked", rec.Item.Title)

	missing, err := history.Version(ctx, "tr-1", domain.MainBranch, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestHistoryRepo_LatestVersion_ZeroWhenNeverWritten(t *testing.T) {
	db := testutil.NewTestDB(t)
	history := NewSQLiteHistoryRepo(db)

	v, err := history.LatestVersion(context.Background(), "ghost", domain.MainBranch)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestHistoryRepo_Recent_NewestFirstWithLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(db)
	history := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	item := testutil.NewTestItem("Busy", testutil.WithID("busy"))
	_, err := items.Insert(ctx, item)
	require.NoError(t, err)
	for _, title := range []string{"Busy v2", "Busy v3", "Busy v4"} {
		titleCopy := title
		_, err := items.Update(ctx, "busy", domain.MainBranch, domain.ItemChanges{Title: &titleCopy})
		require.NoError(t, err)
	}

	recent, err := history.Recent(ctx, domain.MainBranch, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 4, recent[0].Version)
	assert.Equal(t, 3, recent[1].Version)
	assert.Equal(t, "Busy v4", recent[0].Item.Title)
}

func TestHistoryRepo_Recent_ScopedToBranch(t *testing.T) {
	db := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(db)
	branches := NewSQLiteBranchRepo(db, items)
	history := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	_, err := items.Insert(ctx, testutil.NewTestItem("Main only"))
	require.NoError(t, err)
	_, err = branches.Create(ctx, domain.MainBranch, "side", "", "")
	require.NoError(t, err)

	mainFeed, err := history.Recent(ctx, domain.MainBranch, 10)
	require.NoError(t, err)
	sideFeed, err := history.Recent(ctx, "side", 10)
	require.NoError(t, err)
	assert.Len(t, mainFeed, 1)
	assert.Len(t, sideFeed, 1)
	assert.Equal(t, "side", sideFeed[0].Item.BranchID)
}

func TestHistoryRepo_Search_CaseInsensitiveSubstring(t *testing.T) {
	db := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(db)
	history := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	for _, title := range []string{"Deploy staging", "Deploy production", "Retro meeting"} {
		_, err := items.Insert(ctx, testutil.NewTestItem(title))
		require.NoError(t, err)
	}

	hits, err := history.Search(ctx, domain.MainBranch, "DEPLOY", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	limited, err := history.Search(ctx, domain.MainBranch, "deploy", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := history.Search(ctx, domain.MainBranch, "nomatch", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
