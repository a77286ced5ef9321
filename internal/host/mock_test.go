package host

import (
	"github.com/retroenv/retrochip8/internal/chip8"
)

// mockPresenter records all presented frames and status updates.
type mockPresenter struct {
	frames   []chip8.Frame
	statuses []Status
}

func (m *mockPresenter) Present(frame chip8.Frame) {
	m.frames = append(m.frames, frame)
}

func (m *mockPresenter) SetStatus(status Status) {
	m.statuses = append(m.statuses, status)
}

func (m *mockPresenter) lastStatus() Status {
	if len(m.statuses) == 0 {
		return Status{}
	}
	return m.statuses[len(m.statuses)-1]
}

// mockBuzzer records all buzzer state changes.
type mockBuzzer struct {
	changes []bool
}

func (m *mockBuzzer) SetActive(active bool) {
	m.changes = append(m.changes, active)
}
