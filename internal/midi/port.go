package midi

import "gitlab.com/gomidi/midi/v2"

// Port is an open input/output pair.
type Port struct {
	name  string
	queue *Queue
	send  func(midi.Message) error
	stop  func()
}

// NewLoopbackPort builds a port with no driver behind it. Sent messages go to
// send, which may be nil; inbound messages are pushed onto Queue by the caller.
func NewLoopbackPort(name string, queueSize int, send SendFunc) *Port {
	return &Port{name: name, queue: NewQueue(queueSize), send: send}
}

// Name is the input port name the port was opened with.
func (p *Port) Name() string {
	return p.name
}

// Queue returns the inbound message queue.
func (p *Port) Queue() *Queue {
	return p.queue
}

// Send writes msg to the output side. An input-only port discards it.
func (p *Port) Send(msg midi.Message) error {
	if p.send == nil {
		return nil
	}
	return p.send(msg)
}

// Close stops listening. It is safe to call more than once.
func (p *Port) Close() error {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
	p.send = nil
	return nil
}
