// Package status holds the current activation status line and pushes updates
// to an attached display client over WebSocket. The display itself (tray app,
// wall panel) is outside this system; this is the surface it reads.
package status

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Update is one status change pushed to the display client.
type Update struct {
	Object    string    `json:"object"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Broadcaster keeps the latest status and mirrors every change to the
// connected display client, if any. At most one display connection is kept;
// a new connection replaces the old one.
type Broadcaster struct {
	mu           sync.Mutex
	current      Update
	conn         *websocket.Conn
	stopPing     chan struct{}
	pingInterval time.Duration
	logger       *log.Logger
}

// NewBroadcaster creates a Broadcaster with an initial "Idle" status.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	if logger == nil {
		logger = log.Default()
	}
	return &Broadcaster{
		current: Update{
			Object:    "status",
			Status:    "Idle",
			UpdatedAt: time.Now().UTC(),
		},
		pingInterval: 30 * time.Second,
		logger:       logger,
	}
}

// Set records a new status line and pushes it to the display client.
// A push failure only logs; status delivery is best-effort.
func (b *Broadcaster) Set(status string) {
	b.mu.Lock()
	b.current = Update{
		Object:    "status",
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}
	update := b.current
	conn := b.conn
	if conn != nil {
		if err := conn.WriteJSON(update); err != nil {
			b.logger.Printf("Failed to push status update: %v", err)
		}
	}
	b.mu.Unlock()

	b.logger.Printf("Status: %s", status)
}

// Current returns the latest status.
func (b *Broadcaster) Current() Update {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SetConnection registers a new display connection, replacing any existing
// one, and immediately sends the current status.
func (b *Broadcaster) SetConnection(conn *websocket.Conn) {
	b.mu.Lock()
	if b.conn != nil {
		b.conn.Close()
	}
	if b.stopPing != nil {
		close(b.stopPing)
	}
	b.conn = conn
	b.stopPing = make(chan struct{})
	stop := b.stopPing
	// Send the current status while still holding the lock so the write
	// cannot interleave with a concurrent Set push.
	if err := conn.WriteJSON(b.current); err != nil {
		b.logger.Printf("Failed to send initial status: %v", err)
	}
	b.mu.Unlock()

	go b.pingLoop(conn, stop)
	go b.readLoop(conn)

	b.logger.Printf("Status display connected")
}

// Connected reports whether a display client is attached.
func (b *Broadcaster) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

func (b *Broadcaster) pingLoop(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(b.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.mu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, nil)
			b.mu.Unlock()
			if err != nil {
				b.logger.Printf("Failed to ping status display: %v", err)
				return
			}
		case <-stop:
			return
		}
	}
}

// readLoop drains the connection so control frames are processed and detects
// the disconnect.
func (b *Broadcaster) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			b.dropConnection(conn)
			return
		}
	}
}

func (b *Broadcaster) dropConnection(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != conn {
		return
	}
	b.conn = nil
	if b.stopPing != nil {
		close(b.stopPing)
		b.stopPing = nil
	}
	conn.Close()
	b.logger.Printf("Status display disconnected")
}
