package reconciler

import (
	"identity-gateway/internal/auth"
	"identity-gateway/internal/store"
)

// MergeProfile computes the minimal patch that applies claims onto u.
// A field is included only when the claim is present and differs from the
// stored value, so stale or empty claims never clobber admin-set values.
// Returns nil when the patch would be empty, meaning no write at all.
func MergeProfile(u *store.User, claims auth.Claims) *store.UserPatch {
	var patch store.UserPatch

	if claims.Name != "" && claims.Name != u.Name {
		name := claims.Name
		patch.Name = &name
	}
	if claims.Picture != "" && claims.Picture != u.Image {
		image := claims.Picture
		patch.Image = &image
	}

	if patch.IsZero() {
		return nil
	}
	return &patch
}
