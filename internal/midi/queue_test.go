package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestQueue_DrainsInOrder(t *testing.T) {
	q := NewQueue(8)
	for i := uint8(0); i < 5; i++ {
		require.True(t, q.Push(midi.ControlChange(0, 10+i, i)))
	}
	assert.Equal(t, 5, q.Len())

	var got []uint8
	n := q.Drain(func(msg midi.Message) {
		got = append(got, Decode(msg).Data1)
	})
	assert.Equal(t, 5, n)
	assert.Equal(t, []uint8{10, 11, 12, 13, 14}, got)
	assert.Equal(t, 0, q.Drain(func(midi.Message) {}))
}

func TestQueue_DropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	var hooked int
	q.OnDrop(func() { hooked++ })

	assert.True(t, q.Push(midi.NoteOn(0, 36, 1)))
	assert.True(t, q.Push(midi.NoteOn(0, 37, 1)))
	assert.False(t, q.Push(midi.NoteOn(0, 38, 1)))

	assert.Equal(t, uint64(1), q.Dropped())
	assert.Equal(t, 1, hooked)
}

func TestQueue_CopiesMessage(t *testing.T) {
	q := NewQueue(1)
	buf := midi.ControlChange(0, 20, 5)
	q.Push(buf)
	buf[2] = 99

	q.Drain(func(msg midi.Message) {
		assert.Equal(t, uint8(5), Decode(msg).Data2)
	})
}

func TestLoopbackPort(t *testing.T) {
	var sent []midi.Message
	p := NewLoopbackPort("test", 4, func(msg midi.Message) error {
		sent = append(sent, msg)
		return nil
	})
	assert.Equal(t, "test", p.Name())
	require.NoError(t, p.Send(midi.NoteOn(0, 36, 3)))
	assert.Len(t, sent, 1)

	require.NoError(t, p.Close())
	require.NoError(t, p.Send(midi.NoteOn(0, 36, 3)))
	assert.Len(t, sent, 1, "closed port discards output")
	require.NoError(t, p.Close())
}
