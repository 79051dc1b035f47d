package reconciler

import (
	"context"
	"fmt"

	"identity-gateway/internal/auth"
	"identity-gateway/internal/store"
)

// ErrAmbiguousLink means the store holds more than one account row for a
// (provider, provider account id, user) triple. Uniqueness is enforced at
// the store layer, so this is an invariant violation and is surfaced rather
// than silently resolved.
var ErrAmbiguousLink = fmt.Errorf("reconciler: multiple account rows for one provider identity")

// ensureLinked guarantees exactly one account row links ident to userID.
// Repeated sign-ins are a no-op; tokens on an existing row are not refreshed
// here. A concurrent first sign-in losing the insert race surfaces as
// store.ErrDuplicateLink via the store-level uniqueness constraint.
func (r *Reconciler) ensureLinked(ctx context.Context, userID string, ident auth.ProviderIdentity) error {
	matches, err := r.accounts.Find(ctx, store.AccountFilter{
		Provider:          ident.Provider,
		ProviderAccountID: ident.ProviderAccountID,
		UserID:            userID,
	})
	if err != nil {
		return err
	}

	switch len(matches) {
	case 0:
		_, err := r.accounts.Create(ctx, store.NewAccount{
			UserID:            userID,
			Provider:          ident.Provider,
			ProviderAccountID: ident.ProviderAccountID,
			Type:              ident.Type,
			AccessToken:       ident.AccessToken,
			RefreshToken:      ident.RefreshToken,
		})
		return err
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: %s/%s", ErrAmbiguousLink, ident.Provider, ident.ProviderAccountID)
	}
}
