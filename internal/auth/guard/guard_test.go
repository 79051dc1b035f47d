package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-gateway/internal/store"
)

func TestCheckRoleChange(t *testing.T) {
	admin := &store.User{ID: "u1", Role: store.RoleAdmin}
	editor := &store.User{ID: "u2", Role: store.RoleEditor}

	t.Run("self demotion rejected", func(t *testing.T) {
		err := CheckRoleChange("u1", admin, store.RoleEditor)
		require.ErrorIs(t, err, ErrSelfDemotion)
		assert.True(t, IsPolicyViolation(err))
	})

	t.Run("self no-op role keeps admin", func(t *testing.T) {
		assert.NoError(t, CheckRoleChange("u1", admin, store.RoleAdmin))
	})

	t.Run("demoting another admin allowed", func(t *testing.T) {
		other := &store.User{ID: "u3", Role: store.RoleAdmin}
		assert.NoError(t, CheckRoleChange("u1", other, store.RoleEditor))
	})

	t.Run("self promotion of editor allowed by guard", func(t *testing.T) {
		// the guard only protects existing admin privilege
		assert.NoError(t, CheckRoleChange("u2", editor, store.RoleAdmin))
	})
}

func TestCheckDelete(t *testing.T) {
	t.Run("self deletion rejected", func(t *testing.T) {
		err := CheckDelete("u1", "u1")
		require.ErrorIs(t, err, ErrSelfDeletion)
		assert.True(t, IsPolicyViolation(err))
	})

	t.Run("deleting another user allowed", func(t *testing.T) {
		assert.NoError(t, CheckDelete("u1", "u2"))
	})
}
