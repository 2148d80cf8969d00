package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderly/travel-api/internal/models"
)

// RequireRole gates a route group on the authenticated user's role. It runs
// after JWTAuth, so a missing identity means the gate was not applied and the
// request is treated as unauthenticated.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			respondUnauthorized(c, "User not authenticated")
			return
		}

		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.NewAPIError(models.ErrForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}
