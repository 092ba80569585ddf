package sessionstore_test

import (
	"sync"
	"testing"

	"makanapa/internal/adapters/out/sessionstore"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every ports.SessionStore must have.
func exerciseStore(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := t.Context()
	const alice, bob kernel.UserID = 1001, 1002

	_, err := store.Get(ctx, alice)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	session, err := dialogue.NewSession(alice)
	require.NoError(t, err)
	require.NoError(t, session.ChooseService(order.Item))
	require.NoError(t, session.ChooseFromCategory(dialogue.OutsideCampus))
	require.NoError(t, session.TypeFromPlace("Gombak LRT"))
	require.NoError(t, store.Save(ctx, session))

	other, err := dialogue.NewSession(bob)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, other))

	loaded, err := store.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, session.Snapshot(), loaded.Snapshot())

	require.NoError(t, loaded.ChooseToCategory(dialogue.SisterMahallah))
	unsaved, err := store.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, dialogue.ChoosingToCategory, unsaved.State())

	restarted, err := dialogue.NewSession(alice)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, restarted))
	loaded, err = store.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, dialogue.ChoosingService, loaded.State())

	require.NoError(t, store.Delete(ctx, alice))
	require.NoError(t, store.Delete(ctx, alice))
	_, err = store.Get(ctx, alice)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	loaded, err = store.Get(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, bob, loaded.RequesterID())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, sessionstore.NewMemoryStore())
}

func TestMemoryStore_ConcurrentRequesters(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	ctx := t.Context()

	var wg sync.WaitGroup
	for i := 1; i <= 32; i++ {
		wg.Add(1)
		go func(id kernel.UserID) {
			defer wg.Done()
			s, err := dialogue.NewSession(id)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Save(ctx, s))
			_, err = store.Get(ctx, id)
			assert.NoError(t, err)
		}(kernel.UserID(i))
	}
	wg.Wait()

	for i := 1; i <= 32; i++ {
		_, err := store.Get(ctx, kernel.UserID(i))
		require.NoError(t, err)
	}
}
