package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wanderly/travel-api/internal/auth"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

// Context keys under which the authenticated identity is stored. Handlers
// trust these values without re-verifying; this middleware is the sole
// authorization boundary.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// JWTAuth verifies the request's bearer token, resolves the referenced user
// from the credential store and attaches its identity to the gin context.
// Any failure (missing header, bad scheme, invalid or expired token, user no
// longer present) rejects the request with 401 before the handler runs.
func JWTAuth(issuer *auth.TokenIssuer, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			respondUnauthorized(c, "A valid Bearer token is required")
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil {
			respondUnauthorized(c, "Invalid or expired token")
			return
		}

		// The token is stateless, so the user it references may have been
		// removed since issue. Resolve it once per request.
		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			respondUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// OptionalJWTAuth attaches the authenticated identity when a valid bearer
// token is present and otherwise lets the request through as a guest. Used by
// the contact endpoint, where a token only links the submission to an account.
func OptionalJWTAuth(issuer *auth.TokenIssuer, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := issuer.Verify(tokenString)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header.
// RFC 6750: only the Bearer scheme is accepted.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		models.NewAPIError(models.ErrUnauthorized, message))
}
