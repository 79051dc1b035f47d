package provider

import (
	"context"

	"identity-gateway/internal/auth"
)

// OAuthProvider defines the contract every external auth provider must
// implement. Implementations return sign-in facts only and must not perform
// user creation, linking, or session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns the verified principal, provider identity, and profile
	// claims. No admission decisions are made here.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.SignIn, error)
}
