package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/middleware"
	"local-services-server/models"
	ws "local-services-server/websocket"
)

// chatConversation resolves the (customer, provider) pair addressed by a
// chat request. Customers talk to the provider in the path; providers must
// address themselves in the path and name the customer via customer_id.
func chatConversation(c *gin.Context, providerID uint) (customerID uint, ok bool) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}

	if user.IsProvider() {
		if user.ID != providerID {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Access denied",
				"message": "Providers can only access their own conversations",
			})
			return 0, false
		}
		id, err := strconv.ParseUint(c.Query("customer_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing customer",
				"message": "Providers must pass customer_id to address a conversation",
			})
			return 0, false
		}
		return uint(id), true
	}

	return user.ID, true
}

// getChatMessages returns the conversation with a provider, oldest first
func getChatMessages(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Param("providerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	var provider models.User
	if err := database.DB.Where("id = ? AND role = ?", providerID, models.RoleProvider).First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch provider"})
		}
		return
	}

	customerID, ok := chatConversation(c, uint(providerID))
	if !ok {
		return
	}

	var messages []models.ChatMessage
	if err := database.DB.
		Where("customer_id = ? AND provider_id = ?", customerID, providerID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"messages": messages,
	})
}

// postChatMessage appends a message to the conversation and pushes it to
// the counterparty over the WebSocket hub when they are connected.
func postChatMessage(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Param("providerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	var provider models.User
	if err := database.DB.Where("id = ? AND role = ?", providerID, models.RoleProvider).First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch provider"})
		}
		return
	}

	customerID, ok := chatConversation(c, uint(providerID))
	if !ok {
		return
	}

	var req models.ChatMessageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid message",
			"message": err.Error(),
		})
		return
	}

	user, _ := middleware.CurrentUser(c)

	message := models.ChatMessage{
		CustomerID: customerID,
		ProviderID: uint(providerID),
		Message:    req.Message,
		SenderRole: user.Role,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Push to the other side of the conversation
	recipientID := uint(providerID)
	if user.IsProvider() {
		recipientID = customerID
	}
	if chatHub != nil {
		chatHub.SendToUser(recipientID, &ws.Message{
			Type:       "chat",
			CustomerID: customerID,
			ProviderID: uint(providerID),
			SenderID:   user.ID,
			SenderRole: string(user.Role),
			Content:    message.Message,
			Timestamp:  time.Now(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"chat":    message,
	})
}

// handleChatWebSocket upgrades the connection and registers the user on
// the hub for live message delivery
func handleChatWebSocket(c *gin.Context) {
	userID := c.GetUint("user_id")
	ws.ServeWebSocket(chatHub, c.Writer, c.Request, userID)
}
