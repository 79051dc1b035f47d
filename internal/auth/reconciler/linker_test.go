package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-gateway/internal/auth"
	"identity-gateway/internal/store"
)

func TestEnsureLinked_CreatesOnce(t *testing.T) {
	r, _, accounts := newReconciler(nil, nil)
	ctx := context.Background()

	ident := auth.ProviderIdentity{
		Provider:          "google",
		ProviderAccountID: "sub-1",
		Type:              "oidc",
		AccessToken:       "at",
	}

	require.NoError(t, r.ensureLinked(ctx, "user-1", ident))
	require.NoError(t, r.ensureLinked(ctx, "user-1", ident))

	linked, err := accounts.Find(ctx, store.AccountFilter{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "at", linked[0].AccessToken)
}

func TestEnsureLinked_ExistingRow_DoesNotRefreshTokens(t *testing.T) {
	r, _, accounts := newReconciler(nil, nil)
	ctx := context.Background()

	_, err := accounts.Create(ctx, store.NewAccount{
		UserID:            "user-1",
		Provider:          "google",
		ProviderAccountID: "sub-1",
		Type:              "oidc",
		AccessToken:       "original",
	})
	require.NoError(t, err)

	err = r.ensureLinked(ctx, "user-1", auth.ProviderIdentity{
		Provider:          "google",
		ProviderAccountID: "sub-1",
		Type:              "oidc",
		AccessToken:       "fresh",
	})
	require.NoError(t, err)

	linked, err := accounts.Find(ctx, store.AccountFilter{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "original", linked[0].AccessToken)
}

// ambiguousAccounts reports two rows for any filter, which should never
// happen with the uniqueness constraint in place.
type ambiguousAccounts struct {
	store.AccountStore
}

func (a *ambiguousAccounts) Find(context.Context, store.AccountFilter) ([]store.Account, error) {
	return []store.Account{{ID: "a1"}, {ID: "a2"}}, nil
}

func TestEnsureLinked_MultipleRows_InvariantViolation(t *testing.T) {
	r, _, _ := newReconciler(nil, nil)
	r.accounts = &ambiguousAccounts{}

	err := r.ensureLinked(context.Background(), "user-1", auth.ProviderIdentity{
		Provider:          "google",
		ProviderAccountID: "sub-1",
	})
	require.ErrorIs(t, err, ErrAmbiguousLink)
}
