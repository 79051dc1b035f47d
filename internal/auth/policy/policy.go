// Package policy decides whether a first-time email may register and with
// what initial role, based on static allow-lists loaded once at startup.
package policy

import (
	"strings"

	"identity-gateway/internal/store"
)

// AllowList is an immutable, case-sensitive set of email addresses.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from raw entries, trimming surrounding
// whitespace and skipping empties.
func NewAllowList(emails []string) AllowList {
	l := make(AllowList, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		l[e] = struct{}{}
	}
	return l
}

// Contains reports whether email is on the list (exact match).
func (l AllowList) Contains(email string) bool {
	_, ok := l[email]
	return ok
}

// Registration classifies first-time sign-in emails against the admin and
// editor allow-lists.
type Registration struct {
	admins  AllowList
	editors AllowList
}

func NewRegistration(admins, editors AllowList) *Registration {
	return &Registration{admins: admins, editors: editors}
}

// Classify returns the initial role for email. The admin list takes
// precedence when an email appears on both lists. ok is false when the
// email is on neither list and registration is denied.
func (r *Registration) Classify(email string) (role store.Role, ok bool) {
	switch {
	case r.admins.Contains(email):
		return store.RoleAdmin, true
	case r.editors.Contains(email):
		return store.RoleEditor, true
	default:
		return "", false
	}
}
