package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/auth"
	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

const actingUserKey = "actingUser"

// AuthHandler issues tokens and guards authenticated routes.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the auth HTTP adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the acting user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, ActingUser(c))
}

// RequireUser rejects requests without a valid bearer token and stores the
// acting user on the context.
func (h *AuthHandler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		user, err := h.svc.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if errors.Is(err, auth.ErrInvalidToken) {
			h.logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.Set(actingUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects acting users without the ADMIN role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActingUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		c.Next()
	}
}

// ActingUser returns the authenticated user of the request.
func ActingUser(c *gin.Context) models.User {
	if v, ok := c.Get(actingUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}
