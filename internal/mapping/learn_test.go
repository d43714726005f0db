package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearnBank(t *testing.T) (*Bank, *fakeRegistry) {
	t.Helper()
	reg := newFakeRegistry()
	return NewBank(reg, 36), reg
}

func TestLearn_BeginRejectsGroupZero(t *testing.T) {
	b, _ := newLearnBank(t)
	assert.False(t, b.BeginLearn(SlotRef{Group: 0, Index: 0}))
	assert.False(t, b.BeginLearn(SlotRef{Group: 1, Index: MaxChannels}))
	_, armed := b.Learn.Slot()
	assert.False(t, armed)
}

func TestLearn_RequiresBothHalves(t *testing.T) {
	ref := SlotRef{Group: 2, Index: 0}
	target := Target{ModuleID: 3, ParamID: 1}

	t.Run("cc only", func(t *testing.T) {
		b, _ := newLearnBank(t)
		require.True(t, b.BeginLearn(ref))
		assert.False(t, b.LearnCC(14))
		assert.True(t, b.Learn.Armed(ref))
		cc, param := b.Learn.Captured()
		assert.True(t, cc)
		assert.False(t, param)
	})

	t.Run("param only", func(t *testing.T) {
		b, _ := newLearnBank(t)
		require.True(t, b.BeginLearn(ref))
		assert.False(t, b.LearnParam(ref, target))
		assert.True(t, b.Learn.Armed(ref))
	})

	for _, ccFirst := range []bool{true, false} {
		name := "param then cc"
		if ccFirst {
			name = "cc then param"
		}
		t.Run(name, func(t *testing.T) {
			b, reg := newLearnBank(t)
			reg.addParam(target, 0.5)
			require.True(t, b.BeginLearn(ref))

			var committed int
			if ccFirst {
				if b.LearnCC(14) {
					committed++
				}
				if b.LearnParam(ref, target) {
					committed++
				}
			} else {
				if b.LearnParam(ref, target) {
					committed++
				}
				if b.LearnCC(14) {
					committed++
				}
			}
			assert.Equal(t, 1, committed)

			next, armed := b.Learn.Slot()
			assert.True(t, armed)
			assert.Equal(t, SlotRef{Group: 2, Index: 1}, next)
			cc, param := b.Learn.Captured()
			assert.False(t, cc)
			assert.False(t, param)

			v, ok := b.Caches[2].Get(14)
			require.True(t, ok)
			assert.InDelta(t, 63.5, v, 1e-9)
			assert.Equal(t, 2, b.Tables[2].ActiveLength())
		})
	}
}

func TestLearn_LastSlotReturnsToIdle(t *testing.T) {
	b, reg := newLearnBank(t)
	tbl := b.Tables[1]
	for id := 0; id < MaxChannels-1; id++ {
		tbl.BindCC(id, id, nil)
		tbl.BindParam(id, Target{ModuleID: 1, ParamID: id}, true)
	}
	last := SlotRef{Group: 1, Index: MaxChannels - 1}
	target := Target{ModuleID: 1, ParamID: 99}
	reg.addParam(target, 1)

	require.True(t, b.BeginLearn(last))
	b.LearnCC(100)
	assert.True(t, b.LearnParam(last, target))

	_, armed := b.Learn.Slot()
	assert.False(t, armed)
	assert.Equal(t, MaxChannels, tbl.ActiveLength())
}

func TestLearn_AdvanceSkipsCompleteSlots(t *testing.T) {
	b, _ := newLearnBank(t)
	tbl := b.Tables[3]
	tbl.BindCC(1, 40, nil)
	tbl.BindParam(1, Target{ModuleID: 7, ParamID: 1}, true)

	ref := SlotRef{Group: 3, Index: 0}
	require.True(t, b.BeginLearn(ref))
	b.LearnCC(41)
	require.True(t, b.LearnParam(ref, Target{ModuleID: 7, ParamID: 0}))

	next, armed := b.Learn.Slot()
	require.True(t, armed)
	assert.Equal(t, 2, next.Index)
}

func TestLearn_ReenterSameSlotKeepsProgress(t *testing.T) {
	b, _ := newLearnBank(t)
	ref := SlotRef{Group: 4, Index: 2}
	require.True(t, b.BeginLearn(ref))
	b.LearnCC(22)

	require.True(t, b.BeginLearn(ref))
	cc, _ := b.Learn.Captured()
	assert.True(t, cc)

	require.True(t, b.BeginLearn(SlotRef{Group: 4, Index: 3}))
	cc, _ = b.Learn.Captured()
	assert.False(t, cc)
}

func TestLearn_CancelKeepsPartialBinding(t *testing.T) {
	b, _ := newLearnBank(t)
	ref := SlotRef{Group: 5, Index: 0}
	require.True(t, b.BeginLearn(ref))
	b.LearnCC(30)

	b.CancelLearn(SlotRef{Group: 5, Index: 1})
	assert.True(t, b.Learn.Armed(ref), "cancel for another slot is ignored")

	b.CancelLearn(ref)
	_, armed := b.Learn.Slot()
	assert.False(t, armed)
	assert.Equal(t, 30, b.Tables[5].Slot(0).CC())
	assert.Equal(t, SlotCCOnly, b.Tables[5].Slot(0).State(b.Registry()))
}

func TestLearn_ParamForUnarmedSlotIgnored(t *testing.T) {
	b, _ := newLearnBank(t)
	require.True(t, b.BeginLearn(SlotRef{Group: 1, Index: 0}))
	assert.False(t, b.LearnParam(SlotRef{Group: 1, Index: 4}, Target{ModuleID: 1, ParamID: 1}))
	assert.False(t, b.Tables[1].Bound(4))
}

func TestLearn_UnboundedTargetLeavesCacheUnset(t *testing.T) {
	b, reg := newLearnBank(t)
	target := Target{ModuleID: 8, ParamID: 0}
	reg.addParam(target, 0.4).unbounded = true

	ref := SlotRef{Group: 6, Index: 0}
	require.True(t, b.BeginLearn(ref))
	b.LearnCC(50)
	require.True(t, b.LearnParam(ref, target))

	_, ok := b.Caches[6].Get(50)
	assert.False(t, ok)
}
