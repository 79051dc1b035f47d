// Package users is the administrative user management surface. Every
// mutation runs through the self-protection guard before it touches the
// store.
package users

import (
	"context"
	"fmt"

	"identity-gateway/internal/auth/guard"
	"identity-gateway/internal/store"
)

type Service struct {
	users    store.UserStore
	accounts store.AccountStore
}

func NewService(users store.UserStore, accounts store.AccountStore) *Service {
	return &Service{users: users, accounts: accounts}
}

func (s *Service) List(ctx context.Context) ([]store.User, error) {
	return s.users.List(ctx)
}

// Create registers a user without a provider sign-in. The provider account
// is linked later, on the user's first OAuth sign-in.
func (s *Service) Create(ctx context.Context, n store.NewUser) (*store.User, error) {
	return s.users.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id string) (*store.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, store.ErrNotFound
	}
	return u, nil
}

// Update applies a typed patch to the target user. A role change is guarded
// before anything is written; on rejection the mutation is dropped in full.
func (s *Service) Update(ctx context.Context, actorID, id string, patch store.UserPatch) (*store.User, error) {
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Role != nil {
		if err := guard.CheckRoleChange(actorID, target, *patch.Role); err != nil {
			return nil, err
		}
	}
	if patch.IsZero() {
		return target, nil
	}
	return s.users.Update(ctx, id, patch)
}

// Delete removes the target user and every account linked to it. The guard
// runs first; the cascade runs account by account and any failure aborts
// the user deletion so it is surfaced, never half-applied.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if err := guard.CheckDelete(actorID, id); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	linked, err := s.accounts.Find(ctx, store.AccountFilter{UserID: id})
	if err != nil {
		return fmt.Errorf("list linked accounts: %w", err)
	}
	for _, a := range linked {
		if err := s.accounts.Delete(ctx, a.ID); err != nil {
			return fmt.Errorf("cascade delete account %s: %w", a.ID, err)
		}
	}

	return s.users.Delete(ctx, id)
}
