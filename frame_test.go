package frccan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameFlags(t *testing.T) {
	frame := NewFrame(CanEffFlag|0x02030005, 0, 8)
	assert.True(t, frame.IsExtended())
	assert.False(t, frame.IsRemote())
	assert.False(t, frame.IsError())
	assert.Equal(t, uint32(0x02030005), frame.Arbitration())

	frame = NewFrame(0x7DF, 0, 8)
	assert.False(t, frame.IsExtended())
	assert.Equal(t, uint32(0x7DF), frame.Arbitration())

	frame = NewFrame(CanEffFlag|CanRtrFlag|0x1FFFFFFF, 0, 0)
	assert.True(t, frame.IsRemote())
	assert.Equal(t, uint32(0x1FFFFFFF), frame.Arbitration())
}

type countingListener struct {
	frames []Frame
}

func (listener *countingListener) Handle(frame Frame) {
	listener.frames = append(listener.frames, frame)
}

func TestBusManagerDispatch(t *testing.T) {
	bm := NewBusManager(nil)
	all := &countingListener{}
	single := &countingListener{}
	bm.Subscribe(0, 0, all)
	bm.Subscribe(CanEffFlag|0x02030005, 0xFFFFFFFF, single)

	bm.Handle(NewFrame(CanEffFlag|0x02030005, 0, 0))
	bm.Handle(NewFrame(CanEffFlag|0x0A080401, 0, 0))

	assert.Equal(t, 2, len(all.frames))
	assert.Equal(t, 1, len(single.frames))
	assert.Equal(t, CanEffFlag|uint32(0x02030005), single.frames[0].ID)
}

func TestBusManagerDuplicateSubscription(t *testing.T) {
	bm := NewBusManager(nil)
	listener := &countingListener{}
	bm.Subscribe(0, 0, listener)
	bm.Subscribe(0, 0, listener)

	bm.Handle(NewFrame(CanEffFlag|0x40, 0, 0))
	assert.Equal(t, 1, len(listener.frames))
}
