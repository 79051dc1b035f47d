// Package store is the identity store client: typed contracts over the
// persisted users and accounts collections, with Postgres and in-memory
// implementations.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a record addressed by ID does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicateLink is returned when an account insert violates the
	// (provider, provider_account_id) uniqueness constraint. The constraint
	// is what turns a lost concurrent first-sign-in race into a detectable
	// conflict instead of a duplicate row.
	ErrDuplicateLink = errors.New("store: provider account already linked")

	// ErrDuplicateEmail is returned when a user insert violates the unique
	// email index.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// UserStore persists the users collection.
// FindByEmail and FindByID return (nil, nil) when no record matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u NewUser) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id string) error
}

// AccountFilter selects account rows. Empty fields match everything.
type AccountFilter struct {
	Provider          string
	ProviderAccountID string
	UserID            string
}

// AccountStore persists the accounts collection.
type AccountStore interface {
	Find(ctx context.Context, f AccountFilter) ([]Account, error)
	Create(ctx context.Context, a NewAccount) (*Account, error)
	Delete(ctx context.Context, id string) error
}
