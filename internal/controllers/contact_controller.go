package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wanderly/travel-api/internal/middleware"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

// ContactController handles contact-form submissions.
type ContactController struct {
	messages services.MessageService
}

// NewContactController creates a new instance of ContactController
func NewContactController(messages services.MessageService) *ContactController {
	return &ContactController{messages: messages}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit godoc
// @Summary Submit a contact message
// @Description Store a contact message; a valid bearer token links it to the caller's account, otherwise it is stored as a guest submission
// @Tags contact
// @Accept json
// @Produce json
// @Param message body contactRequest true "Contact payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/contact [post]
func (cc *ContactController) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrValidationFailed, "All fields are required"))
		return
	}

	// Set only when the optional auth middleware resolved a user.
	var userID *string
	if id, ok := c.Get(middleware.ContextUserID); ok {
		if s, ok := id.(string); ok {
			userID = &s
		}
	}

	msg, err := cc.messages.Submit(req.Name, req.Email, req.Message, userID)
	if err != nil {
		log.WithError(err).Error("Contact submission failed")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
