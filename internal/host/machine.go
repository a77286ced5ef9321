// Package host runs a CHIP-8 program in real time and connects the CPU to
// the frontends.
package host

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrogolib/log"
)

const eventQueueSize = 64

// ErrInvalidTickRate is returned for a tick rate that is not positive.
var ErrInvalidTickRate = errors.New("tick rate must be positive")

// Status describes the run state of the machine.
type Status struct {
	Paused bool
	Halted bool
	Err    error // error that halted the program
}

// Presenter outputs the machine state, for example to a window.
// Methods are called from the goroutine running the machine.
type Presenter interface {
	Present(frame chip8.Frame)
	SetStatus(status Status)
}

// Buzzer plays a tone while the sound timer is active.
type Buzzer interface {
	SetActive(active bool)
}

// Options configures the machine.
type Options struct {
	TickRate int     // instructions per second
	Seed     *uint64 // fixed random seed, a time based seed is used if nil
	MaxTicks uint64  // stop after the given number of ticks, 0 for no limit
	Trace    bool    // log every executed instruction
}

// Machine runs a program on a CPU and forwards output to the presenters
// and input events to the CPU.
type Machine struct {
	logger     *log.Logger
	options    Options
	rom        *loader.ROM
	cpu        *chip8.CPU
	presenters []Presenter
	buzzer     Buzzer
	events     chan Event
	releases   atomic.Uint32 // key releases that did not fit into the event queue

	status Status
	sound  bool
	quit   bool
	ticks  uint64
}

// New creates a new machine and loads the ROM.
func New(logger *log.Logger, rom *loader.ROM, options Options, buzzer Buzzer, presenters ...Presenter) (*Machine, error) {
	if options.TickRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTickRate, options.TickRate)
	}

	m := &Machine{
		logger:     logger,
		options:    options,
		rom:        rom,
		presenters: presenters,
		buzzer:     buzzer,
		events:     make(chan Event, eventQueueSize),
	}

	seed := m.seed()
	cpu := chip8.New(seed, chip8.WithLogger(logger))
	if err := cpu.LoadBytes(rom.Data); err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", rom.Name, err)
	}
	m.cpu = cpu

	logger.Info("Program loaded",
		log.String("name", rom.Name),
		log.Int("size", len(rom.Data)),
		log.String("xxh64", rom.HashString()),
		log.Hex("seed", seed))
	return m, nil
}

// AddPresenter adds an output for frames and status changes. It must be
// called before Run.
func (m *Machine) AddPresenter(p Presenter) {
	m.presenters = append(m.presenters, p)
}

// Send queues an event for processing by the machine loop. It is safe to
// call from any goroutine and never blocks. Key releases are kept even
// when the queue is full so that no key stays pressed.
func (m *Machine) Send(event Event) {
	key, ok := event.(KeyEvent)
	if ok && key.Key < chip8.KeyCount && key.Pressed {
		// a newer press supersedes a pending release of the same key
		m.releases.And(^(uint32(1) << key.Key))
	}

	select {
	case m.events <- event:
	default:
		if ok && key.Key < chip8.KeyCount && !key.Pressed {
			m.releases.Or(uint32(1) << key.Key)
			m.logger.Debug("Event queue full, deferring key release", log.Uint8("key", uint8(key.Key)))
			return
		}
		m.logger.Warn("Event queue full, dropping event")
	}
}

// Run executes the program at the configured tick rate until the context
// is cancelled, a QuitEvent is received or the tick limit is reached.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.options.TickRate))
	defer ticker.Stop()
	defer m.setSound(false)

	m.present()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())
		case <-ticker.C:
			if !m.Step() {
				return nil
			}
		}
	}
}

// Step processes all pending events and executes a single instruction if
// the machine is not paused or halted. It returns false once the machine
// should stop. Step must not be called concurrently with Run.
func (m *Machine) Step() bool {
	m.processEvents()
	if m.quit {
		return false
	}
	if m.status.Paused || m.status.Halted {
		return true
	}

	if m.options.Trace {
		m.trace()
	}

	res, err := m.cpu.Tick()
	if err != nil {
		m.halt(err)
		return true
	}
	m.ticks++

	if res.DisplayDirty {
		m.present()
	}
	m.setSound(res.SoundActive)

	if m.options.MaxTicks > 0 && m.ticks >= m.options.MaxTicks {
		m.logger.Info("Tick limit reached", log.Int("ticks", int(m.ticks)))
		return false
	}
	return true
}

// State returns a snapshot of the CPU registers. It must not be called
// concurrently with Run.
func (m *Machine) State() chip8.State {
	return m.cpu.State()
}

// Status returns the run state. It must not be called concurrently with Run.
func (m *Machine) Status() Status {
	return m.status
}

// Ticks returns the number of executed instructions since start.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

func (m *Machine) processEvents() {
	for {
		select {
		case event := <-m.events:
			m.handleEvent(event)
		default:
			m.applyReleases()
			return
		}
	}
}

// applyReleases releases the keys whose release event did not fit into
// the event queue.
func (m *Machine) applyReleases() {
	pending := m.releases.Swap(0)
	for key := range chip8.Key(chip8.KeyCount) {
		if pending&(1<<key) != 0 {
			m.cpu.UpdateKeyState(false, false, key)
		}
	}
}

func (m *Machine) handleEvent(event Event) {
	switch e := event.(type) {
	case KeyEvent:
		m.cpu.UpdateKeyState(e.Pressed, e.Repeat, e.Key)

	case PauseEvent:
		m.status.Paused = !m.status.Paused
		if m.status.Paused {
			m.setSound(false)
		}
		m.logger.Debug("Pause toggled", log.String("paused", strconv.FormatBool(m.status.Paused)))
		m.setStatus()

	case ResetEvent:
		m.reset()

	case QuitEvent:
		m.quit = true
	}
}

// reset restarts the program with a new seed and clears a halt state.
func (m *Machine) reset() {
	seed := m.seed()
	m.cpu.Reset(seed)
	if err := m.cpu.LoadBytes(m.rom.Data); err != nil {
		m.halt(err)
		return
	}

	m.status.Halted = false
	m.status.Err = nil
	m.setSound(false)
	m.setStatus()
	m.present()
	m.logger.Info("Program reset", log.Hex("seed", seed))
}

func (m *Machine) halt(err error) {
	m.status.Halted = true
	m.status.Err = err
	m.setSound(false)
	m.setStatus()

	state := m.cpu.State()
	m.logger.Error("Program halted",
		log.Err(err),
		log.Hex("pc", state.PC),
		log.Int("ticks", int(m.ticks)))
}

func (m *Machine) trace() {
	state := m.cpu.State()
	opcode := uint16(m.cpu.ReadMemory(state.PC))<<8 | uint16(m.cpu.ReadMemory(state.PC+1))
	m.logger.Info("Trace",
		log.Hex("pc", state.PC),
		log.Hex("opcode", opcode),
		log.String("asm", disasm.Format(opcode)),
		log.Hex("i", state.I),
		log.Uint8("sp", state.SP))
}

func (m *Machine) present() {
	frame := m.cpu.Display()
	for _, p := range m.presenters {
		p.Present(frame)
	}
}

func (m *Machine) setStatus() {
	for _, p := range m.presenters {
		p.SetStatus(m.status)
	}
}

func (m *Machine) setSound(active bool) {
	if m.sound == active {
		return
	}
	m.sound = active
	if m.buzzer != nil {
		m.buzzer.SetActive(active)
	}
}

func (m *Machine) seed() uint64 {
	if m.options.Seed != nil {
		return *m.options.Seed
	}
	return uint64(time.Now().UnixNano())
}
