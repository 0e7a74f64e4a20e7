package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = time.Second
	shutdownTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local diagnostics tool, any origin
	},
}

// Hub fans placement events out to every connected watcher. The client set
// is owned by the goroutine running Run; everything else talks to it over
// channels.
type Hub struct {
	events     chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}

	clients atomic.Int32
	dropped atomic.Uint64
	log     *log.Logger
}

// NewHub returns a hub whose publish queue holds up to queue events.
func NewHub(queue int, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		events:     make(chan Event, queue),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Publish queues ev for broadcast without blocking. It returns false and
// counts the event as dropped when the queue is full.
func (h *Hub) Publish(ev Event) bool {
	select {
	case h.events <- ev:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) Clients() int {
	return int(h.clients.Load())
}

func (h *Hub) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/feed", h.serveFeed).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.serveHealth).Methods(http.MethodGet)
	return r
}

func (h *Hub) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok clients=%d dropped=%d\n", h.Clients(), h.Dropped())
}

func (h *Hub) serveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Println("feed: upgrade:", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	// Watchers never send anything meaningful; reading only detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Run owns the client set and broadcasts queued events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	clients := make(map[*websocket.Conn]struct{})
	defer func() {
		for conn := range clients {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			conn.Close()
		}
		h.clients.Store(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case conn := <-h.register:
			clients[conn] = struct{}{}
			h.clients.Store(int32(len(clients)))
			h.log.Printf("feed: watcher %s connected (%d total)", conn.RemoteAddr(), len(clients))
		case conn := <-h.unregister:
			if _, ok := clients[conn]; ok {
				delete(clients, conn)
				conn.Close()
				h.clients.Store(int32(len(clients)))
				h.log.Printf("feed: watcher %s left (%d total)", conn.RemoteAddr(), len(clients))
			}
		case ev := <-h.events:
			h.broadcast(clients, h.drain(ev))
		}
	}
}

// drain collects ev plus whatever else is already queued into one batch.
func (h *Hub) drain(ev Event) []Event {
	batch := []Event{ev}
	for {
		select {
		case next := <-h.events:
			batch = append(batch, next)
		default:
			return batch
		}
	}
}

func (h *Hub) broadcast(clients map[*websocket.Conn]struct{}, batch []Event) {
	if len(clients) == 0 {
		return
	}
	msg, err := Encode(batch)
	if err != nil {
		h.log.Println("feed:", err)
		return
	}
	for conn := range clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			h.log.Printf("feed: write to %s: %v", conn.RemoteAddr(), err)
			delete(clients, conn)
			conn.Close()
		}
	}
	h.clients.Store(int32(len(clients)))
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	h.log.Printf("feed: listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("feed: serve %s: %w", addr, err)
	}
	return nil
}
