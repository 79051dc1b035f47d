// Package guard enforces role-based self-protection on mutating access to
// the users collection: a principal can neither revoke its own admin role
// nor delete its own record. Violations are explicit policy outcomes, not
// storage errors.
package guard

import (
	"errors"

	"identity-gateway/internal/store"
)

var (
	// ErrSelfDemotion rejects an admin stripping its own admin role.
	ErrSelfDemotion = errors.New("guard: admins cannot demote themselves")

	// ErrSelfDeletion rejects a principal deleting its own record.
	ErrSelfDeletion = errors.New("guard: admins cannot delete themselves")
)

// IsPolicyViolation reports whether err is one of the guard rejections.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrSelfDemotion) || errors.Is(err, ErrSelfDeletion)
}

// CheckRoleChange evaluates a proposed role change of target by actorID.
// It fails only when the actor is the target, the target currently holds
// the admin role, and the proposed role is anything other than admin.
func CheckRoleChange(actorID string, target *store.User, proposed store.Role) error {
	if target.ID == actorID && target.Role == store.RoleAdmin && proposed != store.RoleAdmin {
		return ErrSelfDemotion
	}
	return nil
}

// CheckDelete evaluates a proposed deletion of targetID by actorID.
// Self-deletion is rejected unconditionally; an admin may delete any other
// user but never itself.
func CheckDelete(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfDeletion
	}
	return nil
}
