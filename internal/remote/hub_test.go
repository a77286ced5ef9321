package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type chanSender struct {
	events chan host.Event
}

func (s *chanSender) Send(event host.Event) {
	s.events <- event
}

func startHub(t *testing.T) (*Hub, *chanSender, *websocket.Conn) {
	t.Helper()

	sender := &chanSender{events: make(chan host.Event, 16)}
	hub := New(log.NewTestLogger(t), sender)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(hub)
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		server.Close()
	})
	return hub, sender, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) (int, []byte) {
	t.Helper()

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, data, err := conn.ReadMessage()
	assert.NoError(t, err)
	return kind, data
}

func TestHub_BroadcastsFrames(t *testing.T) {
	hub, _, conn := startHub(t)

	var frame chip8.Frame
	frame[0] = 0x80
	hub.Present(frame)
	// duplicate frames are not sent
	hub.Present(frame)

	kind, data := readMessage(t, conn)
	assert.Equal(t, websocket.BinaryMessage, kind)
	assert.Len(t, data, chip8.DisplaySize)
	assert.Equal(t, byte(0x80), data[0])

	frame[1] = 0x01
	hub.Present(frame)
	kind, data = readMessage(t, conn)
	assert.Equal(t, websocket.BinaryMessage, kind)
	assert.Equal(t, byte(0x01), data[1])
}

func TestHub_Status(t *testing.T) {
	hub, _, conn := startHub(t)

	hub.SetStatus(host.Status{Paused: true})
	kind, data := readMessage(t, conn)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, StatusPaused, string(data))

	hub.SetStatus(host.Status{})
	_, data = readMessage(t, conn)
	assert.Equal(t, StatusRunning, string(data))
}

func TestHub_KeyMessages(t *testing.T) {
	_, sender, conn := startHub(t)

	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x5, 1, 0x20, 1, 0x5, 0}))

	select {
	case event := <-sender.events:
		assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key5, Pressed: true}), event)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for key press")
	}

	// the invalid key 0x20 is skipped
	select {
	case event := <-sender.events:
		assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key5, Pressed: false}), event)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for key release")
	}
}

func TestHub_NewClientReceivesLastFrame(t *testing.T) {
	hub, _, conn := startHub(t)

	var frame chip8.Frame
	frame[5] = 0xAA
	hub.Present(frame)
	_, data := readMessage(t, conn)
	assert.Equal(t, byte(0xAA), data[5])

	server := httptest.NewServer(hub)
	defer server.Close()
	second, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	assert.NoError(t, err)
	defer func() { _ = second.Close() }()

	kind, data := readMessage(t, second)
	assert.Equal(t, websocket.BinaryMessage, kind)
	assert.Equal(t, byte(0xAA), data[5])
}
