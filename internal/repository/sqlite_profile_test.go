package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_SaveReplacesOnName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	first := domain.NewColumnMapping()
	first.Title = 0
	require.NoError(t, repo.Save(ctx, "jira", first))

	second := domain.NewColumnMapping()
	second.Title = 3
	second.IDStrategy = domain.StrategyColumn
	require.NoError(t, repo.Save(ctx, "jira", second))

	fetched, err := repo.Get(ctx, "jira")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, 3, fetched.Title)
	assert.Equal(t, domain.StrategyColumn, fetched.IDStrategy)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"jira"}, names)
}

func TestProfileRepo_Get_MissingReturnsNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)

	fetched, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestProfileRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jira", domain.NewColumnMapping()))

	n, err := repo.Delete(ctx, "jira")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "jira")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestParamRepo_SetGetReplace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteParamRepo(db)
	ctx := context.Background()

	missing, err := repo.GetParam(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "", missing)

	require.NoError(t, repo.SetParam(ctx, "theme", "dark"))
	require.NoError(t, repo.SetParam(ctx, "theme", "light"))

	val, err := repo.GetParam(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", val)
}
