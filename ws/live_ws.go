package ws

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"dashboard/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// OverviewSource produces the snapshot pushed to dashboard clients.
type OverviewSource interface {
	Overview(now time.Time) (*services.Overview, error)
}

// LiveEvent is the frame sent to every subscriber.
type LiveEvent struct {
	Type string             `json:"type"`
	Data *services.Overview `json:"data"`
	At   time.Time          `json:"at"`
}

// LiveHub pushes the dashboard overview to connected admins on a fixed interval.
// It replaces client-side polling of /admin/dashboard.
type LiveHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.Mutex
	// set while a push is in flight; ticks that arrive meanwhile are dropped
	pushing atomic.Bool

	source   OverviewSource
	interval time.Duration
	log      *zap.Logger
}

func NewLiveHub(source OverviewSource, interval time.Duration, log *zap.Logger) *LiveHub {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &LiveHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		source:     source,
		interval:   interval,
		log:        log,
	}
}

// Run serves register/unregister and the push ticker until ctx ends.
func (h *LiveHub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case <-ticker.C:
			if h.ClientCount() == 0 || !h.pushing.CompareAndSwap(false, true) {
				continue
			}
			go h.push()

		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *LiveHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *LiveHub) snapshot() (*LiveEvent, error) {
	now := time.Now()
	ov, err := h.source.Overview(now)
	if err != nil {
		return nil, err
	}
	return &LiveEvent{Type: "overview", Data: ov, At: now}, nil
}

func (h *LiveHub) push() {
	defer h.pushing.Store(false)
	ev, err := h.snapshot()
	if err != nil {
		h.log.Error("live overview failed", zap.Error(err))
		return
	}
	h.broadcast(ev)
}

// broadcast writes ev to a copy of the client set so a slow peer never
// holds the lock; failed peers are dropped afterwards.
func (h *LiveHub) broadcast(ev *LiveEvent) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Warn("ws write failed", zap.Error(err))
			failed = append(failed, conn)
		}
	}
	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range failed {
		if _, ok := h.clients[conn]; ok {
			delete(h.clients, conn)
			conn.Close()
		}
	}
	h.mu.Unlock()
}

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /admin/live. The first frame is sent right away.
func (h *LiveHub) HandleWebSocket(c *gin.Context) {
	ev, err := h.snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	if err := conn.WriteJSON(ev); err != nil {
		conn.Close()
		return
	}

	select {
	case h.register <- conn:
		go h.listen(conn)
	case <-h.done:
		conn.Close()
	}
}

// listen drains client frames so close and ping are handled; content is ignored.
func (h *LiveHub) listen(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
