package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/auth"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// SignIn handles POST /auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.service.SignIn(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, token)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	profile, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, profile)
}

// RegisterRoutes registers the public and protected auth endpoints.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/sign-in", h.SignIn)
	protected.GET("/me", h.Me)
}
