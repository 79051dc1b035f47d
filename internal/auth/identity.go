// Package auth holds the normalized facts a provider asserts about one
// sign-in attempt. It contains facts only, no decisions.
package auth

// Principal is the externally authenticated identity asserted by the
// OAuth provider for this sign-in attempt.
type Principal struct {
	Email         string // verified email returned by provider
	EmailVerified bool   // whether provider asserts email ownership
}

// ProviderIdentity is the (provider, provider account id) pair uniquely
// identifying an external credential, plus the opaque tokens issued with it.
type ProviderIdentity struct {
	Provider          string // e.g. "google"
	ProviderAccountID string // provider-scoped unique user identifier (sub)
	Type              string // credential type, e.g. "oidc"
	AccessToken       string
	RefreshToken      string
}

// Claims are optional descriptive attributes asserted by the provider.
// They are not security-relevant.
type Claims struct {
	Name    string
	Picture string // avatar URL
}

// SignIn bundles everything one provider callback asserts.
type SignIn struct {
	Principal Principal
	Identity  ProviderIdentity
	Claims    Claims
}
