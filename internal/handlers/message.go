package handlers

import (
	"net/http"

	"github.com/khushi-1907/virtual-study-group/internal/models"
	"github.com/khushi-1907/virtual-study-group/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	groups   *service.GroupService
	messages *service.MessageService
}

func NewMessageHandler(groups *service.GroupService, messages *service.MessageService) *MessageHandler {
	return &MessageHandler{groups: groups, messages: messages}
}

// GetGroupMessages returns the persisted chat history for a group,
// oldest first, so a client can replay it before joining the live room.
func (h *MessageHandler) GetGroupMessages(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	exists, err := h.groups.Exists(groupID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	messages, err := h.messages.ListByGroup(groupID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessageHandler) CreateGroupMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	var req models.MessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.groups.IsMember(groupID.String(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this group"})
		return
	}

	msg, err := h.messages.Append(groupID.String(), userID.(uuid.UUID), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}
