// Package reconciler maps a provider sign-in onto a durable local user and
// decides admission. It is the ONLY place where identity-to-user mapping
// logic lives.
package reconciler

import (
	"context"
	"errors"

	"identity-gateway/internal/auth"
	"identity-gateway/internal/auth/policy"
	"identity-gateway/internal/store"
)

// Reason is a stable, machine-checkable denial token. The HTTP layer renders
// it without parsing prose.
type Reason string

const (
	ReasonMissingEmail     Reason = "MissingEmail"
	ReasonUnauthorized     Reason = "UnauthorizedEmail"
	ReasonLinkConflict     Reason = "DuplicateLinkConflict"
	ReasonStoreUnavailable Reason = "StoreUnavailable"
)

// Decision is the outcome of one sign-in attempt.
type Decision struct {
	Allowed bool
	Reason  Reason // set only when denied
	UserID  string // set only when allowed
}

func allow(userID string) Decision {
	return Decision{Allowed: true, UserID: userID}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Reconciler orchestrates the sign-in callback: lookup by email, link the
// provider account, sync profile claims, or register a new user when the
// allow-lists permit it.
type Reconciler struct {
	users        store.UserStore
	accounts     store.AccountStore
	registration *policy.Registration
}

func New(users store.UserStore, accounts store.AccountStore, registration *policy.Registration) *Reconciler {
	return &Reconciler{
		users:        users,
		accounts:     accounts,
		registration: registration,
	}
}

// Reconcile decides one sign-in attempt. Policy denials return a nil error;
// infrastructure failures return the underlying error alongside the denial
// so the caller can log it. A store failure is never an Allow.
//
// Every step checks before acting, so an attempt abandoned mid-sequence is
// safe to retry from scratch.
func (r *Reconciler) Reconcile(ctx context.Context, s auth.SignIn) (Decision, error) {
	if s.Principal.Email == "" {
		return deny(ReasonMissingEmail), nil
	}

	existing, err := r.users.FindByEmail(ctx, s.Principal.Email)
	if err != nil {
		return deny(ReasonStoreUnavailable), err
	}

	if existing != nil {
		if err := r.ensureLinked(ctx, existing.ID, s.Identity); err != nil {
			return deny(linkFailureReason(err)), err
		}
		if err := r.syncProfile(ctx, existing, s.Claims); err != nil {
			return deny(ReasonStoreUnavailable), err
		}
		return allow(existing.ID), nil
	}

	role, ok := r.registration.Classify(s.Principal.Email)
	if !ok {
		return deny(ReasonUnauthorized), nil
	}

	created, err := r.users.Create(ctx, store.NewUser{
		Email: s.Principal.Email,
		Role:  role,
	})
	if err != nil {
		return deny(ReasonStoreUnavailable), err
	}
	if err := r.syncProfile(ctx, created, s.Claims); err != nil {
		return deny(ReasonStoreUnavailable), err
	}
	if err := r.ensureLinked(ctx, created.ID, s.Identity); err != nil {
		return deny(linkFailureReason(err)), err
	}
	return allow(created.ID), nil
}

// syncProfile applies the minimal profile patch, skipping the write entirely
// when nothing differs.
func (r *Reconciler) syncProfile(ctx context.Context, u *store.User, claims auth.Claims) error {
	patch := MergeProfile(u, claims)
	if patch == nil {
		return nil
	}
	_, err := r.users.Update(ctx, u.ID, *patch)
	return err
}

func linkFailureReason(err error) Reason {
	if errors.Is(err, store.ErrDuplicateLink) {
		return ReasonLinkConflict
	}
	return ReasonStoreUnavailable
}
