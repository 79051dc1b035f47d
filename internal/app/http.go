package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"identity-gateway/internal/auth/handler"
	"identity-gateway/internal/auth/policy"
	"identity-gateway/internal/auth/provider"
	"identity-gateway/internal/auth/provider/google"
	"identity-gateway/internal/auth/reconciler"
	"identity-gateway/internal/config"
	"identity-gateway/internal/middleware"
	"identity-gateway/internal/session"
	"identity-gateway/internal/store"
	"identity-gateway/internal/users"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := store.NewPostgresUsers(infra.db)
	accountStore := store.NewPostgresAccounts(infra.db)
	sessionStore := session.NewRedisStore(infra.redis.Client)

	registration := policy.NewRegistration(
		policy.NewAllowList(cfg.AdminEmails),
		policy.NewAllowList(cfg.EditorEmails),
	)
	rec := reconciler.New(userStore, accountStore, registration)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authHandler := handler.NewHandler(registry, sessionStore, rec, cfg.SessionTTL)
	usersHandler := users.NewHandler(users.NewService(userStore, accountStore))
	bridge := middleware.NewSessionBridge(sessionStore, userStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(bridge.RequireUser())

	api.GET("/me", func(c *gin.Context) {
		u, _ := middleware.CurrentUser(c.Request.Context())
		c.JSON(200, gin.H{
			"user_id": u.ID,
			"email":   u.Email,
			"role":    u.Role,
		})
	})

	admin := api.Group("/")
	admin.Use(middleware.RequireAdmin())
	usersHandler.RegisterRoutes(admin)

	return router, func() error {
		return infra.db.Close()
	}, nil
}
