package terminal

import "github.com/retroenv/retrochip8/internal/host"

type mockSender struct {
	events []host.Event
}

func (m *mockSender) Send(event host.Event) {
	m.events = append(m.events, event)
}
