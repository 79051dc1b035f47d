// Package middleware bridges a session token onto a live user record for
// every authenticated request. The token being valid is necessary but not
// sufficient: the backing record must still exist, which is how a deleted
// user is de-authorized instantly.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"identity-gateway/internal/session"
	"identity-gateway/internal/store"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(ctx context.Context) (*store.User, bool) {
	u, ok := ctx.Value(userKey).(*store.User)
	return u, ok
}

// WithUser returns ctx carrying u. Exposed for tests.
func WithUser(ctx context.Context, u *store.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// SessionBridge resolves the session cookie's subject to a user record,
// re-fetching it from the store on every request. No caching: freshness
// over latency.
type SessionBridge struct {
	sessions session.Store
	users    store.UserStore
}

func NewSessionBridge(sessions session.Store, users store.UserStore) *SessionBridge {
	return &SessionBridge{sessions: sessions, users: users}
}

// RequireUser aborts with 401 unless the request carries a live session
// whose subject still resolves to a user record. Store failures are
// treated as unauthenticated, never as access.
func (b *SessionBridge) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(c)
			return
		}

		sess, err := b.sessions.Get(c.Request.Context(), cookie.Value)
		if err != nil || sess == nil {
			unauthorized(c)
			return
		}

		if time.Now().After(sess.ExpiresAt) {
			_ = b.sessions.Delete(c.Request.Context(), sess.ID)
			unauthorized(c)
			return
		}

		u, err := b.users.FindByID(c.Request.Context(), sess.UserID)
		if err != nil || u == nil {
			unauthorized(c)
			return
		}

		ctx := WithUser(c.Request.Context(), u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless RequireUser already attached an
// admin. It must run after RequireUser in the chain.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c.Request.Context())
		if !ok {
			unauthorized(c)
			return
		}
		if u.Role != store.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
			})
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Unauthorized",
	})
}
