package customerrepo_test

import (
	"testing"
	"time"

	"makanapa/internal/adapters/out/postgres/customerrepo"
	"makanapa/internal/adapters/out/postgres/testdb"
	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository_AddIfAbsent(t *testing.T) {
	ctx := t.Context()
	repo := customerrepo.NewGormCustomerRepository(testdb.NewSQLite(t))

	now := time.Now().UTC().Truncate(time.Second)
	c, err := customer.NewCustomer(1001, "aisyah", now)
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, c))

	// A second insert with a different handle leaves the stored row alone.
	again, err := customer.NewCustomer(1001, "renamed", now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, again))

	got, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "aisyah", string(got.Handle()))
	assert.False(t, got.IsBlocked())
	assert.True(t, now.Equal(got.CreatedAt()))
}

func TestGormCustomerRepository_AddIfAbsent_KeepsBlockedFlag(t *testing.T) {
	ctx := t.Context()
	repo := customerrepo.NewGormCustomerRepository(testdb.NewSQLite(t))

	c, err := customer.NewCustomer(1001, "aisyah", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, c))

	c.Block()
	require.NoError(t, repo.Update(ctx, c))

	fresh, err := customer.NewCustomer(1001, "aisyah", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.AddIfAbsent(ctx, fresh))

	got, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked())
}

func TestGormCustomerRepository_Get_NotFound(t *testing.T) {
	repo := customerrepo.NewGormCustomerRepository(testdb.NewSQLite(t))

	_, err := repo.Get(t.Context(), 42)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormCustomerRepository_Update(t *testing.T) {
	ctx := t.Context()
	repo := customerrepo.NewGormCustomerRepository(testdb.NewSQLite(t))

	c, err := customer.NewCustomer(1001, "aisyah", time.Now())
	require.NoError(t, err)
	require.ErrorIs(t, repo.Update(ctx, c), errs.ErrObjectNotFound)

	require.NoError(t, repo.AddIfAbsent(ctx, c))
	c.Block()
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked())

	got.Unblock()
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, 1001)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked())
}
