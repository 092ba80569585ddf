package runnerrepo_test

import (
	"testing"
	"time"

	"makanapa/internal/adapters/out/postgres/runnerrepo"
	"makanapa/internal/adapters/out/postgres/testdb"
	"makanapa/internal/core/domain/model/runner"
	"makanapa/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRunnerRepository_AddIfAbsent(t *testing.T) {
	ctx := t.Context()
	repo := runnerrepo.NewGormRunnerRepository(testdb.NewSQLite(t))

	r, err := runner.NewRunner(2002, "hakim", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, r))

	// A second claim by the same runner keeps the first row.
	renamed, err := runner.NewRunner(2002, "hakim_new", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, renamed))

	got, err := repo.Get(ctx, 2002)
	require.NoError(t, err)
	assert.Equal(t, "hakim", string(got.Handle()))

	_, err = repo.Get(ctx, 3003)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
