package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wanderly/travel-api/internal/auth"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

// AuthController handles signup and login.
type AuthController struct {
	users  services.UserService
	tokens *auth.TokenIssuer
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(users services.UserService, tokens *auth.TokenIssuer) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary Register a new account
// @Description Create a user account and return it together with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body signupRequest true "Signup payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Router /api/auth/signup [post]
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrValidationFailed, "All fields are required"))
		return
	}

	user, err := ac.users.Register(req.Name, req.Email, req.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrConflict, "Email already exists"))
		return
	}
	if err != nil {
		log.WithError(err).Error("Signup failed")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	ac.respondWithToken(c, user)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return the user together with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrValidationFailed, "All fields are required"))
		return
	}

	user, err := ac.users.Authenticate(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		// Same response for an unknown email and a wrong password.
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrUnauthorized, models.MsgInvalidCredentials))
		return
	}
	if err != nil {
		log.WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	ac.respondWithToken(c, user)
}

// respondWithToken returns the public user projection plus a fresh token.
func (ac *AuthController) respondWithToken(c *gin.Context, user *models.User) {
	token, err := ac.tokens.Issue(user)
	if err != nil {
		log.WithError(err).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
