// Package remote streams the display to websocket clients and accepts
// keypad input from them.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
)

const (
	broadcastQueueSize = 16
	shutdownTimeout    = 2 * time.Second
)

// Status messages sent as text messages to the clients.
const (
	StatusRunning = "running"
	StatusPaused  = "paused"
	StatusHalted  = "halted"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64,
	WriteBufferSize: chip8.DisplaySize * 2,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Sender receives the key events sent by clients.
type Sender interface {
	Send(event host.Event)
}

type message struct {
	kind int // websocket message type
	data []byte
}

// Hub manages all connected clients. Frames are broadcast as binary
// messages of the framebuffer bytes. Clients send key messages of 2 bytes:
// the keypad key and 1 for pressed or 0 for released.
// It implements host.Presenter and http.Handler.
type Hub struct {
	logger *log.Logger
	sender Sender

	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan message
	done       chan struct{}

	lastHash uint64
	hashSet  bool
	last     []message // last frame and status for new clients
}

// New returns a new hub that forwards key input to sender.
func New(logger *log.Logger, sender Sender) *Hub {
	return &Hub{
		logger:     logger,
		sender:     sender,
		clients:    map[*client]struct{}{},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan message, broadcastQueueSize),
		done:       make(chan struct{}),
		last:       make([]message, 2),
	}
}

// Present broadcasts the frame to all clients if it differs from the last
// broadcast frame.
func (h *Hub) Present(frame chip8.Frame) {
	hash := xxhash.Sum64(frame[:])
	if h.hashSet && hash == h.lastHash {
		return
	}
	h.lastHash = hash
	h.hashSet = true

	data := make([]byte, len(frame))
	copy(data, frame[:])
	h.queue(message{kind: websocket.BinaryMessage, data: data})
}

// SetStatus broadcasts the run state as text message.
func (h *Hub) SetStatus(status host.Status) {
	text := StatusRunning
	switch {
	case status.Halted:
		text = fmt.Sprintf("%s: %v", StatusHalted, status.Err)
	case status.Paused:
		text = StatusPaused
	}
	h.queue(message{kind: websocket.TextMessage, data: []byte(text)})
}

func (h *Hub) queue(msg message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("Remote broadcast queue full, dropping message")
	}
}

// Run processes client registrations and broadcasts until the context is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			for _, msg := range h.last {
				if msg.data != nil {
					c.send <- msg
				}
			}
			h.logger.Info("Remote client connected", log.String("address", c.address))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.logger.Info("Remote client disconnected", log.String("address", c.address))
			}

		case msg := <-h.broadcast:
			if msg.kind == websocket.BinaryMessage {
				h.last[0] = msg
			} else {
				h.last[1] = msg
			}

			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow client
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// ServeHTTP upgrades the connection to a websocket connection and starts
// serving the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Upgrading websocket connection failed", log.Err(err))
		return
	}

	c := newClient(h, conn, r.RemoteAddr)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// ListenAndServe serves the hub on the address until the context is
// cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", address, err)
	}
	h.logger.Info("Remote viewer listening", log.String("address", listener.Addr().String()))

	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving remote viewer: %w", err)
	}
	return nil
}
