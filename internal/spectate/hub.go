// Package spectate broadcasts live player positions to WebSocket
// spectators. Games publish snapshots; the hub quantizes them, drops
// frames that did not change and fans them out to every connected client.
package spectate

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only ever send control frames.
	maxMessageSize = 512

	sendBuffer    = 64
	publishBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Tile is a grid coordinate on the wire.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Update is one spectator frame. Positions are rounded to two decimals.
type Update struct {
	Session   string  `json:"session"`
	Level     string  `json:"level"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	FacingX   float64 `json:"facing_x"`
	FacingY   float64 `json:"facing_y"`
	Monster   *Tile   `json:"monster,omitempty"`
	Keys      int     `json:"keys"`
	KeysTotal int     `json:"keys_total"`
	Gun       bool    `json:"gun"`
	Time      float64 `json:"time"`
	Moves     float64 `json:"moves"`
	State     string  `json:"state"`
}

// Quantize rounds v to two decimals.
func Quantize(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewUpdate converts a game snapshot into a spectator frame.
func NewUpdate(session string, snap mazerun.Snapshot) Update {
	u := Update{
		Session:   session,
		Level:     snap.LevelID,
		X:         Quantize(snap.Player.X),
		Y:         Quantize(snap.Player.Y),
		FacingX:   Quantize(snap.Facing.X),
		FacingY:   Quantize(snap.Facing.Y),
		Keys:      snap.KeysCollected,
		KeysTotal: snap.KeysTotal,
		Gun:       snap.HasGun,
		Time:      Quantize(snap.Time),
		Moves:     Quantize(snap.Moves),
		State:     string(snap.State),
	}
	if snap.Monster != nil {
		u.Monster = &Tile{X: snap.Monster.X, Y: snap.Monster.Y}
	}
	return u
}

type frame struct {
	session string
	data    []byte
	ended   bool // the run is won or lost
	forget  bool // the session is gone
}

// latest is the last frame seen for a session.
type latest struct {
	data  []byte
	ended bool
}

type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of spectators and broadcasts frames to them.
type Hub struct {
	logger *log.Logger

	clients map[*client]struct{}
	last    map[string]latest // live runs are replayed to new spectators

	register   chan *client
	unregister chan *client
	broadcast  chan frame
	done       chan struct{} // closed when Run returns

	count    atomic.Int64
	sessions atomic.Int64
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger:     logger.WithPrefix("spectate"),
		clients:    make(map[*client]struct{}),
		last:       make(map[string]latest),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan frame, publishBuffer),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, after
// disconnecting every spectator.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			for _, l := range h.last {
				if l.ended {
					continue
				}
				select {
				case c.send <- l.data:
				default:
				}
			}
			h.logger.Info("spectator joined", "id", c.id, "spectators", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Info("spectator left", "id", c.id, "spectators", len(h.clients))
			}

		case f := <-h.broadcast:
			if f.forget {
				delete(h.last, f.session)
				h.sessions.Store(int64(len(h.last)))
				continue
			}
			if bytes.Equal(h.last[f.session].data, f.data) {
				continue
			}
			h.last[f.session] = latest{data: f.data, ended: f.ended}
			h.sessions.Store(int64(len(h.last)))
			for c := range h.clients {
				select {
				case c.send <- f.data:
				default:
					h.logger.Warn("dropping slow spectator", "id", c.id)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Sessions returns the number of sessions whose latest frame is held.
func (h *Hub) Sessions() int {
	return int(h.sessions.Load())
}

// Publish queues a snapshot for broadcast. It never blocks the game loop:
// when the queue is full the frame is dropped.
func (h *Hub) Publish(session string, snap mazerun.Snapshot) {
	data, err := json.Marshal(NewUpdate(session, snap))
	if err != nil {
		h.logger.Error("cannot encode update", "error", err)
		return
	}
	ended := snap.State == mazerun.StateWon || snap.State == mazerun.StateKilled
	select {
	case h.broadcast <- frame{session: session, data: data, ended: ended}:
	default:
	}
}

// Forget drops a session's latest frame once the session is over. Frames
// queued before it are still delivered.
func (h *Hub) Forget(session string) {
	select {
	case h.broadcast <- frame{session: session, forget: true}:
	case <-h.done:
	}
}

// ServeHTTP upgrades the request to a WebSocket spectator connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards everything the spectator sends and unregisters it
// once the connection fails.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("spectator read error", "id", c.id, "error", err)
			}
			return
		}
	}
}

// writePump sends one WebSocket message per frame and keeps the
// connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
