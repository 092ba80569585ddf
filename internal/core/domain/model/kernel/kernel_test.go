package kernel_test

import (
	"testing"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		id, err := kernel.NewUserID(42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
	})

	t.Run("zero id is rejected", func(t *testing.T) {
		_, err := kernel.NewUserID(0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestHandle_Mention(t *testing.T) {
	assert.Equal(t, "@aisyah", kernel.Handle("aisyah").Mention(7))
	assert.Equal(t, "user 7", kernel.Handle("").Mention(7))
}

func TestMessageRef(t *testing.T) {
	ref, err := kernel.NewMessageRef(-100123, 55)
	require.NoError(t, err)
	assert.False(t, ref.IsZero())

	_, err = kernel.NewMessageRef(-100123, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.True(t, kernel.MessageRef{}.IsZero())
}

func TestUUID(t *testing.T) {
	id := kernel.NewUUID()
	require.NoError(t, id.Validate())

	parsed, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, id.IsEqual(parsed))

	_, err = kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	require.Error(t, kernel.UUID{}.Validate())
}
