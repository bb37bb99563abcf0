package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 4096
)

// Envelope is the client-to-server frame. join_group carries the group id;
// send_message carries a chat event.
type Envelope struct {
	Event string            `json:"event"`
	Group string            `json:"group,omitempty"`
	Data  *models.ChatEvent `json:"data,omitempty"`
}

// ServerEvent is the server-to-client frame.
type ServerEvent struct {
	Event string            `json:"event"`
	Data  *models.ChatEvent `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// membershipChecker and messageAppender are the slices of the service layer
// the realtime client needs.
type membershipChecker interface {
	IsMember(groupID string, userID uuid.UUID) (bool, error)
}

type messageAppender interface {
	Append(groupID string, senderID uuid.UUID, content string) (*models.Message, error)
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	userID    uuid.UUID
	userName  string

	groupSvc membershipChecker
	msgSvc   messageAppender
}

// shutdown releases the connection exactly once. The send channel is never
// closed: both pumps and the hub may race a drop, so the done channel is the
// only termination signal and stray sends just fall on the floor.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "user", c.userID, "err", err)
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendError("invalid_json")
			continue
		}

		switch env.Event {
		case "join_group":
			c.handleJoin(env.Group)
		case "send_message":
			c.handleSendMessage(env.Data)
		default:
			c.sendError("unsupported_event")
		}
	}
}

func (c *Client) handleJoin(groupID string) {
	if groupID == "" {
		c.sendError("missing_group")
		return
	}
	// only members may subscribe to a group's broadcast scope
	ok, err := c.groupSvc.IsMember(groupID, c.userID)
	if err != nil {
		c.sendError("join_failed")
		return
	}
	if !ok {
		c.sendError("not_a_member")
		return
	}
	c.hub.Join(c, groupID)
}

func (c *Client) handleSendMessage(data *models.ChatEvent) {
	if data == nil || data.Group == "" || data.Text == "" {
		c.sendError("missing_fields")
		return
	}

	// same membership rule as the HTTP write path
	ok, err := c.groupSvc.IsMember(data.Group, c.userID)
	if err != nil {
		c.sendError("send_failed")
		return
	}
	if !ok {
		c.sendError("not_a_member")
		return
	}

	// Persist first: the store is authoritative, the broadcast is
	// best-effort. A message that failed to persist is never delivered.
	msg, err := c.msgSvc.Append(data.Group, c.userID, data.Text)
	if err != nil {
		slog.Warn("failed to persist message", "group", data.Group, "user", c.userID, "err", err)
		c.sendError("send_failed")
		return
	}

	evt := ServerEvent{
		Event: "receive_message",
		Data: &models.ChatEvent{
			ID:         msg.ID.String(),
			Group:      data.Group,
			Sender:     c.userID.String(),
			SenderName: c.senderName(data),
			Text:       data.Text,
			Timestamp:  msg.CreatedAt.UnixMilli(),
		},
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		c.sendError("send_failed")
		return
	}

	// The sender is subscribed to the room like everyone else, so it
	// receives its own message back instead of echoing locally.
	c.hub.Broadcast(context.Background(), data.Group, payload)
}

func (c *Client) senderName(data *models.ChatEvent) string {
	if c.userName != "" {
		return c.userName
	}
	return data.SenderName
}

func (c *Client) sendError(code string) {
	payload, _ := json.Marshal(ServerEvent{Event: "error", Error: code})
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker((pongWait * 9) / 10)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.done:
			// hub dropped us or the read loop ended
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}
