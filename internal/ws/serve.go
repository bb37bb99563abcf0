package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/khushi-1907/virtual-study-group/internal/service"
	"github.com/khushi-1907/virtual-study-group/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the HTTP connection to a WebSocket, authenticates the user
// via JWT (Authorization header or token query parameter, since browser
// WebSocket clients cannot set headers), registers the client with the hub,
// and starts the pumps.
func ServeWS(h *Hub, groupSvc *service.GroupService, msgSvc *service.MessageService, userSvc *service.UserService, c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		auth := c.GetHeader("Authorization")
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := utils.ValidateJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	var userName string
	if user, err := userSvc.GetByID(claims.UserID); err == nil {
		userName = user.Name
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		done:     make(chan struct{}),
		userID:   claims.UserID,
		userName: userName,
		groupSvc: groupSvc,
		msgSvc:   msgSvc,
	}

	h.RegisterClient(client)
	go client.Serve()
}
