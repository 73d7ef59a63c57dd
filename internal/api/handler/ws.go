package handler

import (
	"net/http"

	"bedmatch/backend/internal/gateway"
	"bedmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile apps connect from app schemes; origin checks happen upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

var validPurposes = map[string]bool{
	"interest":     true,
	"appointments": true,
	"chat":         true,
	"dashboard":    true,
}

// ServeWebSocket upgrades GET /ws/:role/:purpose. The role in the path must
// match the authenticated identity's role; one socket serves one purpose.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
		return
	}

	id, err := h.validateToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
		return
	}

	role := c.Param("role")
	purpose := c.Param("purpose")
	if role != id.Role {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "endpoint role does not match token"})
		return
	}
	if !validPurposes[purpose] {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown endpoint"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &gateway.WebSocketClient{
		ConnID:   uuid.New().String(),
		User:     id.UserID,
		UserRole: id.Role,
		Kind:     purpose,
		Socket:   conn,
		Hub:      h.Hub,
		Router:   h.Router,
		Send:     make(chan models.OutboundMessage, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
