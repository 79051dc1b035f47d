package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"identity-gateway/internal/auth/provider"
	"identity-gateway/internal/auth/reconciler"
	"identity-gateway/internal/logger"
	"identity-gateway/internal/session"
)

// signInErrorPath is where denied sign-ins land; the reason token rides in
// the error query parameter for the UI to render.
const signInErrorPath = "/signin?error="

type Handler struct {
	providers  *provider.Registry
	sessions   session.Store
	reconciler *reconciler.Reconciler
	sessionTTL time.Duration
}

func NewHandler(
	registry *provider.Registry,
	sessions session.Store,
	rec *reconciler.Reconciler,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		providers:  registry,
		sessions:   sessions,
		reconciler: rec,
		sessionTTL: sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/oauth/login/:provider", h.login)
	r.GET("/oauth/callback/:provider", h.callback)
	r.POST("/auth/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// callback is the one sign-in reconciliation entry point: it exchanges the
// code, asks the reconciler for an admission decision, and issues a session
// only on Allow. Denials redirect with a stable reason token.
func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error",
			"provider", providerName,
			"error", errParam,
			"desc", c.Query("error_description"),
		)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	signIn, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Error("oauth code exchange failed",
			"provider", providerName,
			"error", err.Error(),
		)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	decision, err := h.reconciler.Reconcile(c.Request.Context(), *signIn)
	if err != nil {
		logger.Error("sign-in reconciliation failed",
			"provider", providerName,
			"reason", string(decision.Reason),
			"error", err.Error(),
		)
	}
	if !decision.Allowed {
		c.Redirect(http.StatusFound, signInErrorPath+string(decision.Reason))
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.sessionTTL)

	sess := session.Session{
		ID:        sessionID,
		UserID:    decision.UserID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("sign-in accepted",
		"provider", providerName,
		"user_id", decision.UserID,
	)

	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
	})
}

// logout invalidates the caller's session token. Persisted user and account
// records are untouched.
func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort: an already-gone session is still a logout
		_ = h.sessions.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
