package mapping

// LearnSession tracks the single in-progress learn. A session is armed on a
// slot until both a CC and a parameter have been captured for it, then it
// commits and moves on to the next incomplete slot of the same group.
type LearnSession struct {
	slot          SlotRef
	armed         bool
	ccCaptured    bool
	paramCaptured bool
}

// Begin arms the session on ref. Re-arming the armed slot keeps the halves
// captured so far. Invalid refs are ignored.
func (l *LearnSession) Begin(ref SlotRef) bool {
	if !ref.Valid() {
		return false
	}
	if !l.armed || l.slot != ref {
		l.slot = ref
		l.armed = true
		l.ccCaptured = false
		l.paramCaptured = false
	}
	return true
}

// Cancel disarms the session if it is armed on ref. Captured halves are
// already written to the table and stay there.
func (l *LearnSession) Cancel(ref SlotRef) {
	if l.armed && l.slot == ref {
		l.armed = false
	}
}

// Stop disarms the session regardless of slot.
func (l *LearnSession) Stop() {
	l.armed = false
	l.ccCaptured = false
	l.paramCaptured = false
}

// Slot returns the armed slot.
func (l *LearnSession) Slot() (SlotRef, bool) {
	return l.slot, l.armed
}

// Armed reports whether the session is armed on ref.
func (l *LearnSession) Armed(ref SlotRef) bool {
	return l.armed && l.slot == ref
}

// Captured reports which halves of the armed slot have arrived.
func (l *LearnSession) Captured() (cc, param bool) {
	return l.ccCaptured, l.paramCaptured
}

// CaptureCC binds cc to the armed slot of t. It returns true when the
// capture completed the slot and the session committed.
func (l *LearnSession) CaptureCC(t *GroupTable, cache *ValueCache, cc int) bool {
	if !l.armed || cc < 0 || cc >= NumKeys {
		return false
	}
	t.BindCC(l.slot.Index, cc, cache)
	l.ccCaptured = true
	return l.commit(t, cache)
}

// CaptureParam binds target to the armed slot of t. It returns true when the
// capture completed the slot and the session committed.
func (l *LearnSession) CaptureParam(t *GroupTable, cache *ValueCache, target Target) bool {
	if !l.armed || !t.BindParam(l.slot.Index, target, true) {
		return false
	}
	l.paramCaptured = true
	return l.commit(t, cache)
}

func (l *LearnSession) commit(t *GroupTable, cache *ValueCache) bool {
	if !l.ccCaptured || !l.paramCaptured {
		return false
	}
	l.ccCaptured = false
	l.paramCaptured = false

	s := t.Slot(l.slot.Index)
	if v, ok := t.reg.ScaledValue(s.handle); ok && cache != nil {
		cache.Set(s.cc, v*MaxValue)
	}
	t.RecomputeActiveLength()

	if next, ok := t.NextIncomplete(l.slot.Index); ok {
		l.slot.Index = next
		return true
	}
	l.armed = false
	return true
}
