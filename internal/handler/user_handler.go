package handler

import (
	"errors"
	"net/http"
	"strconv"

	"kawanlib/internal/middleware"
	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Error(c, http.StatusConflict, "Username already taken")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	response.OK(c, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	response.OK(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	response.OK(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	response.OK(c, http.StatusOK, "User deleted successfully", nil)
}

// Me returns the profile of the authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetInt(middleware.AuthUserKey)

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	response.OK(c, http.StatusOK, "User retrieved successfully", user)
}

// RegisterUserRoutes registers user routes. Account management lives
// under /admin/users; /users/me only needs a valid token.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/users/me", authMW, h.Me)

	adminGroup := rg.Group("/admin/users")
	adminGroup.Use(authMW, adminMW)
	{
		adminGroup.POST("", h.Create)
		adminGroup.GET("", h.List)
		adminGroup.GET("/:id", h.Get)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
