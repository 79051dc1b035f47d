package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	users := NewMemoryUsers()
	ctx := context.Background()

	_, err := users.Create(ctx, NewUser{Email: "a@x.com", Role: RoleEditor})
	require.NoError(t, err)

	_, err = users.Create(ctx, NewUser{Email: "A@x.com", Role: RoleEditor})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUsers_PatchAppliesOnlyPresentFields(t *testing.T) {
	users := NewMemoryUsers()
	ctx := context.Background()

	u, err := users.Create(ctx, NewUser{Email: "a@x.com", Role: RoleEditor})
	require.NoError(t, err)

	name := "Ada"
	updated, err := users.Update(ctx, u.ID, UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, RoleEditor, updated.Role)
	assert.Empty(t, updated.Image)
}

func TestMemoryUsers_UpdateMissing(t *testing.T) {
	users := NewMemoryUsers()
	_, err := users.Update(context.Background(), "ghost", UserPatch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAccounts_UniqueProviderPair(t *testing.T) {
	accounts := NewMemoryAccounts()
	ctx := context.Background()

	_, err := accounts.Create(ctx, NewAccount{
		UserID:            "u1",
		Provider:          "google",
		ProviderAccountID: "123",
		Type:              "oidc",
	})
	require.NoError(t, err)

	// same pair, even for a different user, is a conflict
	_, err = accounts.Create(ctx, NewAccount{
		UserID:            "u2",
		Provider:          "google",
		ProviderAccountID: "123",
		Type:              "oidc",
	})
	require.ErrorIs(t, err, ErrDuplicateLink)

	// a different provider account id is fine
	_, err = accounts.Create(ctx, NewAccount{
		UserID:            "u1",
		Provider:          "google",
		ProviderAccountID: "456",
		Type:              "oidc",
	})
	require.NoError(t, err)
}

func TestMemoryAccounts_FilterCombinations(t *testing.T) {
	accounts := NewMemoryAccounts()
	ctx := context.Background()

	seed := []NewAccount{
		{UserID: "u1", Provider: "google", ProviderAccountID: "1", Type: "oidc"},
		{UserID: "u1", Provider: "github", ProviderAccountID: "2", Type: "oauth"},
		{UserID: "u2", Provider: "google", ProviderAccountID: "3", Type: "oidc"},
	}
	for _, n := range seed {
		_, err := accounts.Create(ctx, n)
		require.NoError(t, err)
	}

	byUser, err := accounts.Find(ctx, AccountFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byPair, err := accounts.Find(ctx, AccountFilter{Provider: "google", ProviderAccountID: "3"})
	require.NoError(t, err)
	require.Len(t, byPair, 1)
	assert.Equal(t, "u2", byPair[0].UserID)

	all, err := accounts.Find(ctx, AccountFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
