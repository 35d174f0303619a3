package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de /api/auth.
type AuthHandler struct {
	logger        *zap.Logger
	authServ      *service.AuthService
	secureCookies bool
}

// NewAuthHandler crea un AuthHandler. secureCookies marca la cookie de sesion
// como Secure (solo en produccion).
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		authServ:      authServ,
		secureCookies: secureCookies,
	}
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgAllFieldsRequired))
		return
	}

	session, err := h.authServ.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	setSessionCookie(c, session.Token, h.secureCookies)
	c.JSON(http.StatusCreated, gin.H{"user": session.User})
}

// Signin maneja POST /api/auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgAllFieldsRequired))
		return
	}

	session, err := h.authServ.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	setSessionCookie(c, session.Token, h.secureCookies)
	c.JSON(http.StatusOK, session.User.Public())
}

// Google maneja POST /api/auth/google.
func (h *AuthHandler) Google(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgEmailRequired))
		return
	}

	session, err := h.authServ.Google(c.Request.Context(), req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}

	setSessionCookie(c, session.Token, h.secureCookies)
	c.JSON(http.StatusOK, session.User.Public())
}

// Signout maneja POST /api/auth/signout y POST /api/user/signout.
func (h *AuthHandler) Signout(c *gin.Context) {
	clearSessionCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, gin.H{"message": "Signout successfully"})
	h.logger.Info("user signed out")
}
