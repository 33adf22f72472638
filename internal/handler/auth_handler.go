package handler

import (
	"errors"
	"net/http"

	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"
	"kawanlib/internal/utils"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the cookie carrying the refresh token between
// login and verify/logout.
const RefreshCookieName = "refreshToken"

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	issuer  *utils.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, issuer *utils.TokenIssuer) *AuthHandler {
	return &AuthHandler{service: s, issuer: issuer}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Error(c, http.StatusConflict, "Username already taken")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.OK(c, http.StatusCreated, "User registered successfully", gin.H{
		"userId":   user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	_, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "Username not found")
		case errors.Is(err, service.ErrIncorrectPassword):
			response.Error(c, http.StatusUnauthorized, "Incorrect password")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	h.setRefreshCookie(c, refreshToken, int(h.issuer.RefreshTTL().Seconds()))

	// The body carries only the access token; the refresh token travels
	// in the cookie, and user details come from /auth/verify.
	response.OK(c, http.StatusOK, "Login successful", gin.H{
		"token": accessToken,
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "Session not found")
		return
	}

	user, accessToken, err := h.service.Verify(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to verify session")
		return
	}

	response.OK(c, http.StatusOK, "Session verified", gin.H{
		"userId":   user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
		"token":    accessToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "Session not found")
		return
	}

	if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			// A second logout finds no stored session. Clear the stale
			// cookie but still report the failed lookup.
			h.setRefreshCookie(c, "", -1)
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.setRefreshCookie(c, "", -1)
	response.OK(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(RefreshCookieName, value, maxAge, "/", "", true, true)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/verify", h.Verify)
		authGroup.DELETE("/logout", h.Logout)
	}
}
