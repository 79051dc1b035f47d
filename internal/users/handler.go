package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"identity-gateway/internal/auth/guard"
	"identity-gateway/internal/middleware"
	"identity-gateway/internal/store"
)

// userView is the read shape of a user. Account tokens are opaque secrets
// and have no place here.
type userView struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	Image         string     `json:"image,omitempty"`
	EmailVerified *time.Time `json:"emailVerified,omitempty"`
	Role          store.Role `json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func viewOf(u *store.User) userView {
	return userView{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type createRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
	Role  *string `json:"role"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin user management API. The group must
// already require an authenticated admin.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/users", h.list)
	g.POST("/users", h.create)
	g.GET("/users/:id", h.get)
	g.PATCH("/users/:id", h.update)
	g.DELETE("/users/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, viewOf(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role := store.Role(req.Role)
	if req.Email == "" || !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a valid role are required"})
		return
	}

	u, err := h.svc.Create(c.Request.Context(), store.NewUser{
		Email: req.Email,
		Role:  role,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(u))
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(u))
}

func (h *Handler) update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := store.UserPatch{
		Name:  req.Name,
		Image: req.Image,
	}
	if req.Role != nil {
		role := store.Role(*req.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		patch.Role = &role
	}

	u, err := h.svc.Update(c.Request.Context(), actor.ID, c.Param("id"), patch)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(u))
}

func (h *Handler) remove(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// storeError maps service failures to responses. Guard rejections are
// policy violations with their own stable token, distinct from storage
// errors.
func storeError(c *gin.Context, err error) {
	switch {
	case guard.IsPolicyViolation(err):
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "PolicyViolation",
			"detail": err.Error(),
		})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "DuplicateEmail"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NotFound"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "StoreUnavailable"})
	}
}
