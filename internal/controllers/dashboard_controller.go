package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wanderly/travel-api/internal/middleware"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

// DashboardController handles the user and admin message dashboards.
type DashboardController struct {
	messages services.MessageService
}

// NewDashboardController creates a new instance of DashboardController
func NewDashboardController(messages services.MessageService) *DashboardController {
	return &DashboardController{messages: messages}
}

type replyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// ListOwnMessages godoc
// @Summary List the caller's messages
// @Description Return the messages whose sender email matches the authenticated user's email, newest first
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/dashboard/messages [get]
func (dc *DashboardController) ListOwnMessages(c *gin.Context) {
	email, exists := c.Get(middleware.ContextUserEmail)
	if !exists {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	messages, err := dc.messages.ListByEmail(email.(string))
	if err != nil {
		log.WithError(err).Error("Failed to list user messages")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ListPendingMessages godoc
// @Summary List pending messages
// @Description Return all unanswered messages, newest first. Admin only.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/dashboard/admin/messages [get]
func (dc *DashboardController) ListPendingMessages(c *gin.Context) {
	messages, err := dc.messages.ListPending()
	if err != nil {
		log.WithError(err).Error("Failed to list pending messages")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ReplyToMessage godoc
// @Summary Reply to a message
// @Description Set the reply text and mark the message answered. Admin only.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param reply body replyRequest true "Reply payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/dashboard/reply/{id} [patch]
func (dc *DashboardController) ReplyToMessage(c *gin.Context) {
	id := c.Param("id")

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrValidationFailed, "Reply cannot be empty"))
		return
	}

	msg, err := dc.messages.Reply(id, req.Reply)
	if errors.Is(err, services.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrNotFound, "Message not found"))
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to reply to message")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, models.MsgInternalError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
