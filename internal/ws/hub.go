package ws

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const roomChannelPrefix = "room:"

// Hub owns the room registry: the mapping between live connections and the
// group rooms they are subscribed to. All map mutation happens on the run()
// goroutine, so joins, leaves and broadcasts from concurrent connections
// never race.
//
// When a Redis client is configured, broadcasts are published to a
// "room:<group-id>" channel and re-delivered locally through PSubscribe, so
// several server instances share one broadcast scope. Without Redis the hub
// loops payloads back directly.
type Hub struct {
	rdb *redis.Client

	rooms   map[string]map[*Client]bool // group id -> subscribed clients
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription
	broadcast  chan *RoomMessage
}

type subscription struct {
	client *Client
	room   string
}

// RoomMessage is a payload addressed to every connection subscribed to Room,
// including the one that sent it.
type RoomMessage struct {
	Room    string
	Payload []byte
}

func NewHub(rdb *redis.Client) *Hub {
	h := &Hub{
		rdb:        rdb,
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		broadcast:  make(chan *RoomMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	if h.rdb != nil {
		pubsub := h.rdb.PSubscribe(context.Background(), roomChannelPrefix+"*")
		ch := pubsub.Channel()
		go func() {
			for msg := range ch {
				room := strings.TrimPrefix(msg.Channel, roomChannelPrefix)
				h.broadcast <- &RoomMessage{Room: room, Payload: []byte(msg.Payload)}
			}
		}()
	}

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			for room, members := range h.rooms {
				if members[c] {
					delete(members, c)
					if len(members) == 0 {
						delete(h.rooms, room)
					}
				}
			}
			c.shutdown()

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			members, ok := h.rooms[sub.room]
			if !ok {
				members = make(map[*Client]bool)
				h.rooms[sub.room] = members
			}
			// map semantics make a repeated join a no-op, so a client
			// never receives the same broadcast twice
			members[sub.client] = true

		case m := <-h.broadcast:
			for c := range h.rooms[m.Room] {
				select {
				case c.send <- m.Payload:
				default:
					// slow consumer: drop the connection rather than
					// block the whole room
					h.drop(c)
				}
			}
		}
	}
}

// drop removes a client from the registry from within the run loop. The send
// channel stays open: the client's read loop may still be running and must be
// able to attempt sends without panicking. shutdown closes the conn, which
// ends the read loop and triggers the normal unregister path.
func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		if members[c] {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.shutdown()
}

// RegisterClient adds a connection with no room subscriptions.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a connection from every room it joined. No
// departure event is broadcast.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Join subscribes a connection to a group's broadcast scope. Idempotent.
func (h *Hub) Join(c *Client, room string) {
	h.subscribe <- subscription{client: c, room: room}
}

// Broadcast delivers a payload to every connection currently subscribed to
// the room, the sender included. Delivery is best-effort: a connection that
// cannot keep up simply misses the event.
func (h *Hub) Broadcast(ctx context.Context, room string, payload []byte) {
	if h.rdb != nil {
		if err := h.rdb.Publish(ctx, roomChannelPrefix+room, string(payload)).Err(); err != nil {
			slog.Warn("redis publish failed, delivering locally", "room", room, "err", err)
			h.broadcast <- &RoomMessage{Room: room, Payload: payload}
		}
		return
	}
	h.broadcast <- &RoomMessage{Room: room, Payload: payload}
}
