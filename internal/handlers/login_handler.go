package handlers

import (
	"errors"
	"net/http"

	"go-storefront/internal/auth"
	"go-storefront/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	sessions *auth.Sessions
	logger   *zap.Logger
}

func NewAuthHandler(sessions *auth.Sessions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger.Named("auth")}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	session, err := h.sessions.SignIn(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be Bearer <token>"})
		return
	}
	if err := h.sessions.SignOut(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session reports the signed-in user. Runs behind AuthMiddleware.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetUint(middleware.CtxUserID),
		"email":   c.GetString(middleware.CtxEmail),
		"role":    c.GetString(middleware.CtxRole),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	user, err := h.sessions.Register(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, auth.ErrInvalidInput) {
		badRequest(c, err.Error())
		return
	}
	if err != nil {
		h.logger.Warn("register failed", zap.Error(err))
		badRequest(c, "User likely already exists")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!", "user": user})
}
