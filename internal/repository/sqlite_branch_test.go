package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBranchTestRepos(t *testing.T) (*SQLiteItemRepo, *SQLiteBranchRepo, *SQLiteHistoryRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	items := NewSQLiteItemRepo(db)
	branches := NewSQLiteBranchRepo(db, items)
	history := NewSQLiteHistoryRepo(db)
	return items, branches, history
}

func TestBranchRepo_Create_CopiesCurrentItems(t *testing.T) {
	items, branches, history := newBranchTestRepos(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := items.Insert(ctx, testutil.NewTestItem(title))
		require.NoError(t, err)
	}

	branch, err := branches.Create(ctx, domain.MainBranch, "feature", "Feature plan", "what-if")
	require.NoError(t, err)
	assert.Equal(t, "feature", branch.ID)
	assert.Equal(t, domain.MainBranch, branch.CreatedFrom)

	mainCount, err := branches.ItemCount(ctx, domain.MainBranch)
	require.NoError(t, err)
	featureCount, err := branches.ItemCount(ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, mainCount, featureCount)

	// Each copy is a fresh insert: version-1 history on the new branch,
	// nothing inherited from the parent.
	copied, err := items.List(ctx, "feature", Filter{})
	require.NoError(t, err)
	require.Len(t, copied, 3)
	for _, item := range copied {
		records, err := history.History(ctx, item.ID, "feature")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1, records[0].Version)
		assert.Equal(t, domain.OpInsert, records[0].Op)
	}
}

func TestBranchRepo_Create_BranchesAreIsolated(t *testing.T) {
	items, branches, _ := newBranchTestRepos(t)
	ctx := context.Background()

	original := testutil.NewTestItem("Shared start", testutil.WithID("it-1"))
	_, err := items.Insert(ctx, original)
	require.NoError(t, err)

	_, err = branches.Create(ctx, domain.MainBranch, "scenario", "Scenario", "")
	require.NoError(t, err)

	// Later edits on the parent never propagate.
	title := "Changed on main"
	_, err = items.Update(ctx, "it-1", domain.MainBranch, domain.ItemChanges{Title: &title})
	require.NoError(t, err)

	onBranch, err := items.Get(ctx, "it-1", "scenario")
	require.NoError(t, err)
	require.NotNil(t, onBranch)
	assert.Equal(t, "Shared start", onBranch.Title)
}

func TestBranchRepo_Create_MissingSourceFails(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)

	_, err := branches.Create(context.Background(), "ghost", "target", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestBranchRepo_Create_DuplicateTargetFails(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)
	ctx := context.Background()

	_, err := branches.Create(ctx, domain.MainBranch, "feature", "", "")
	require.NoError(t, err)

	_, err = branches.Create(ctx, domain.MainBranch, "feature", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBranchExists)
}

func TestBranchRepo_Delete_MainIsProtected(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)

	err := branches.Delete(context.Background(), domain.MainBranch)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtectedBranch)
	assert.Contains(t, err.Error(), "main")
}

func TestBranchRepo_Delete_MissingBranchFails(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)

	err := branches.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestBranchRepo_Delete_RemovesItemsKeepsHistory(t *testing.T) {
	items, branches, history := newBranchTestRepos(t)
	ctx := context.Background()

	_, err := items.Insert(ctx, testutil.NewTestItem("On main", testutil.WithID("it-1")))
	require.NoError(t, err)
	_, err = branches.Create(ctx, domain.MainBranch, "doomed", "", "")
	require.NoError(t, err)

	require.NoError(t, branches.Delete(ctx, "doomed"))

	gone, err := branches.Get(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := branches.ItemCount(ctx, "doomed")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// History survives, orphaned from any live branch.
	records, err := history.History(ctx, "it-1", "doomed")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBranchRepo_Update_Metadata(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)
	ctx := context.Background()

	_, err := branches.Create(ctx, domain.MainBranch, "feature", "Old label", "old note")
	require.NoError(t, err)

	label := "New label"
	n, err := branches.Update(ctx, "feature", domain.BranchChanges{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	branch, err := branches.Get(ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, "New label", branch.Label)
	assert.Equal(t, "old note", branch.Note, "absent fields are left unchanged")
}

func TestBranchRepo_Update_NoFieldsOrMissingBranch_ReturnsZero(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)
	ctx := context.Background()

	n, err := branches.Update(ctx, domain.MainBranch, domain.BranchChanges{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	label := "x"
	n, err = branches.Update(ctx, "ghost", domain.BranchChanges{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBranchRepo_ItemCount_UnknownBranchIsZero(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)

	n, err := branches.ItemCount(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBranchRepo_List_IncludesMain(t *testing.T) {
	_, branches, _ := newBranchTestRepos(t)
	ctx := context.Background()

	_, err := branches.Create(ctx, domain.MainBranch, "feature", "", "")
	require.NoError(t, err)

	all, err := branches.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.MainBranch, all[0].ID)
}
