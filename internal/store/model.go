package store

import "time"

// Role is the authorization role of a local user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User is a durable local identity. Email is the sole correlation key
// between provider sign-ins and local identity.
type User struct {
	ID            string
	Email         string
	Name          string
	Image         string
	EmailVerified *time.Time
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Account is one linked external-provider credential owned by a user.
// AccessToken and RefreshToken are opaque secrets and must never appear
// in read views.
type Account struct {
	ID                string
	UserID            string
	Provider          string
	ProviderAccountID string
	Type              string
	AccessToken       string
	RefreshToken      string
	CreatedAt         time.Time
}

// NewUser carries the fields set at user creation.
type NewUser struct {
	Email string
	Role  Role
}

// NewAccount carries the fields set when linking a provider credential.
type NewAccount struct {
	UserID            string
	Provider          string
	ProviderAccountID string
	Type              string
	AccessToken       string
	RefreshToken      string
}

// UserPatch is a typed partial update: a nil field is left untouched.
type UserPatch struct {
	Name  *string
	Image *string
	Role  *Role
}

// IsZero reports whether the patch would change nothing.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Image == nil && p.Role == nil
}
