package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wanderly/travel-api/internal/auth"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

func setupGate(t *testing.T) (services.UserService, *auth.TokenIssuer, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return services.NewUserService(db), auth.NewTokenIssuer("test-secret", auth.TokenTTL), db
}

// identityEcho reports the identity the middleware attached, if any.
func identityEcho(c *gin.Context) {
	email, _ := c.Get(ContextUserEmail)
	role, _ := c.Get(ContextUserRole)
	c.JSON(http.StatusOK, gin.H{"email": email, "role": role})
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	users, issuer, _ := setupGate(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(issuer, users), identityEcho)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuthAttachesResolvedIdentity(t *testing.T) {
	users, issuer, _ := setupGate(t)

	user, err := users.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(issuer, users), identityEcho)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.Contains(t, w.Body.String(), models.RoleUser)
}

func TestJWTAuthRejectsTokenForDeletedUser(t *testing.T) {
	users, issuer, db := setupGate(t)

	user, err := users.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	// The token stays verifiable, but the account behind it is gone.
	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(issuer, users), identityEcho)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWTAuthPassesGuestsThrough(t *testing.T) {
	users, issuer, _ := setupGate(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", OptionalJWTAuth(issuer, users), func(c *gin.Context) {
		_, authenticated := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	// No token and an invalid token both degrade to a guest request.
	for _, header := range []string{"", "Bearer bogus"} {
		req := httptest.NewRequest("POST", "/contact", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	}
}

func TestOptionalJWTAuthAttachesValidIdentity(t *testing.T) {
	users, issuer, _ := setupGate(t)

	user, err := users.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", OptionalJWTAuth(issuer, users), identityEcho)

	req := httptest.NewRequest("POST", "/contact", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestRequireRole(t *testing.T) {
	users, issuer, db := setupGate(t)

	user, err := users.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	userToken, err := issuer.Issue(user)
	require.NoError(t, err)

	require.NoError(t, users.EnsureDefaultAdmin("Admin", "admin@example.com", "Admin@123"))
	var admin models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&admin).Error)
	adminToken, err := issuer.Issue(&admin)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", JWTAuth(issuer, users), RequireRole(models.RoleAdmin), identityEcho)

	// Plain user: authenticated but forbidden.
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin passes.
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// No gate at all: RequireRole alone treats the request as unauthenticated.
	router.GET("/ungated", RequireRole(models.RoleAdmin), identityEcho)
	req = httptest.NewRequest("GET", "/ungated", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
