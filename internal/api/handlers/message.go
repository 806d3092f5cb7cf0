package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/api/middleware"
	"match-service/internal/models"
	"match-service/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// CreateMessage godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMessageRequest true "Recipient and content"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Self-send, unknown recipient or send failure"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request",
			Details: err.Error(),
		})
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), middleware.MemberID(c), req)
	if err != nil {
		respondError(c, err, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages godoc
// @Summary List one mailbox container page
// @Description container is inbox (default), outbox or unread; most recent first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 50)"
// @Param container query string false "inbox, outbox or unread" default(inbox)
// @Success 200 {object} pagination.Result[models.MessageResponse]
// @Failure 400 {object} models.ErrorResponse "Invalid pagination input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /messages [get]
func (h *MessageHandler) GetMessages(c *gin.Context) {
	var params models.MessageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid query parameters",
			Details: err.Error(),
		})
		return
	}
	// Absent means first page; an explicit invalid value is rejected
	// downstream.
	if c.Query("pageNumber") == "" {
		params.PageNumber = 1
	}
	params.MemberID = middleware.MemberID(c)

	result, err := h.messageService.GetForMember(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to get messages")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetThread godoc
// @Summary Get the conversation with another member
// @Description All messages between the caller and the other member, oldest first, minus messages the caller deleted
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Other member id"
// @Success 200 {array} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /messages/thread/{memberId} [get]
func (h *MessageHandler) GetThread(c *gin.Context) {
	messages, err := h.messageService.GetThread(c.Request.Context(), middleware.MemberID(c), c.Param("memberId"))
	if err != nil {
		respondError(c, err, "failed to get thread")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// DeleteMessage godoc
// @Summary Delete a message for the caller's side
// @Description Hides the caller's view; the message is removed entirely once both parties have deleted it
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Caller is no party to the message"
// @Failure 404 {object} models.ErrorResponse "Unknown message"
// @Router /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	err := h.messageService.Delete(c.Request.Context(), middleware.MemberID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "problem deleting the message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
