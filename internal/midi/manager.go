package midi

import (
	"errors"
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// ErrPortNotFound is returned when a named port is not present on the driver.
var ErrPortNotFound = errors.New("midi port not found")

// Manager handles MIDI port discovery
type Manager struct {
	mu     sync.RWMutex
	onDrop func()
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// SetDropHook registers a hook called for every inbound message a full
// queue drops. It applies to ports opened afterwards.
func (m *Manager) SetDropHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDrop = fn
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}

// Open connects the named ports. Inbound messages land in a queue of the
// given capacity; an empty outName leaves the port input-only.
func (m *Manager) Open(inName, outName string, queueSize int) (*Port, error) {
	in, err := m.GetInPort(inName)
	if err != nil {
		return nil, err
	}

	p := &Port{name: inName, queue: NewQueue(queueSize)}
	m.mu.RLock()
	p.queue.OnDrop(m.onDrop)
	m.mu.RUnlock()

	if outName != "" {
		out, err := m.GetOutPort(outName)
		if err != nil {
			return nil, err
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("failed to create sender: %w", err)
		}
		p.send = send
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		p.queue.Push(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}
	p.stop = stop

	return p, nil
}
