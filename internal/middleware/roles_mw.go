package middleware

import (
	"net/http"

	"kawanlib/internal/model"
	"kawanlib/internal/response"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles.
// It must run after JWTAuthMiddleware has populated the claims.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			response.AbortError(c, http.StatusForbidden, "Role not found in token, ensure JWT middleware runs first")
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			response.AbortError(c, http.StatusForbidden, "Invalid role type in token")
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		response.AbortError(c, http.StatusForbidden, "You do not have permission to access this resource")
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
