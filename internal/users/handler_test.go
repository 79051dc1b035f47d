package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-gateway/internal/middleware"
	"identity-gateway/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// actAs injects the acting user the way the session bridge would.
func actAs(u *store.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), u))
		c.Next()
	}
}

func adminRouter(t *testing.T, actor *store.User, svc *Service) *gin.Engine {
	t.Helper()
	router := gin.New()
	api := router.Group("/api")
	api.Use(actAs(actor))
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func TestPatch_SelfDemotion_PolicyViolation(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(
		http.MethodPatch,
		"/api/users/"+admin.ID,
		strings.NewReader(`{"role":"editor"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PolicyViolation")

	stored, err := users.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, store.RoleAdmin, stored.Role)
}

func TestDelete_Self_PolicyViolation(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+admin.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PolicyViolation")
}

func TestCreate_User(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users",
		strings.NewReader(`{"email":"new@x.com","role":"editor"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	created, err := users.FindByEmail(context.Background(), "new@x.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, store.RoleEditor, created.Role)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)
	seedUser(t, users, "taken@x.com", store.RoleEditor)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users",
		strings.NewReader(`{"email":"taken@x.com","role":"editor"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DuplicateEmail")
}

func TestCreate_InvalidRole(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	router := adminRouter(t, admin, svc)

	for _, body := range []string{
		`{"email":"new@x.com","role":"owner"}`,
		`{"role":"editor"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestPatch_InvalidRole(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)
	target := seedUser(t, users, "target@x.com", store.RoleEditor)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(
		http.MethodPatch,
		"/api/users/"+target.ID,
		strings.NewReader(`{"role":"owner"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_OmitsAccountTokens(t *testing.T) {
	users := store.NewMemoryUsers()
	accounts := store.NewMemoryAccounts()
	svc := NewService(users, accounts)
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	_, err := accounts.Create(context.Background(), store.NewAccount{
		UserID:            admin.ID,
		Provider:          "google",
		ProviderAccountID: "123",
		Type:              "oidc",
		AccessToken:       "super-secret-token",
	})
	require.NoError(t, err)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@x.com")
	assert.NotContains(t, w.Body.String(), "super-secret-token")
}

func TestGet_NotFound(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, store.NewMemoryAccounts())
	admin := seedUser(t, users, "admin@x.com", store.RoleAdmin)

	router := adminRouter(t, admin, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
