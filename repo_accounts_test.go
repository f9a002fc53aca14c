package auth_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/ftechlab/playauth"
)

func TestAccountsRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := auth.NewAccountsRepository(db)

	t.Run("create assigns an id", func(t *testing.T) {
		created, err := repo.Create(ctx, &auth.Account{
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			PasswordHash: "hash-1",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("get by email returns the stored record", func(t *testing.T) {
		record, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", record.Name)
		assert.Equal(t, "hash-1", record.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, &auth.Account{
			Name:         "Jane Again",
			Email:        "jane@example.com",
			PasswordHash: "hash-2",
		})
		assert.ErrorIs(t, err, auth.ErrAccountExists)
	})

	t.Run("unknown email is a not found", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.Error(t, err)
		assert.True(t, goerrors.IsNotFound(err))
	})
}
