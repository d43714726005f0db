package mapping

// handleRefs counts the slots holding each handle. Tables of one bank share
// it so a handle bound in several groups survives until its last slot lets go.
type handleRefs map[Handle]int

// GroupTable is the fixed-capacity slot table of one group. Slots are never
// reordered so indices stay stable for the UI and for persistence.
type GroupTable struct {
	reg          Registry
	refs         handleRefs
	slots        [MaxChannels]Slot
	activeLength int
}

// NewGroupTable allocates one handle per slot.
func NewGroupTable(reg Registry) *GroupTable {
	return newGroupTable(reg, handleRefs{})
}

func newGroupTable(reg Registry, refs handleRefs) *GroupTable {
	t := &GroupTable{reg: reg, refs: refs}
	for i := range t.slots {
		t.slots[i] = Slot{cc: NoCC, handle: t.newHandle()}
	}
	t.RecomputeActiveLength()
	return t
}

// Close drops the table's claim on every handle it holds.
func (t *GroupTable) Close() {
	for i := range t.slots {
		t.drop(t.slots[i].handle)
		t.slots[i].handle = NoHandle
	}
}

func (t *GroupTable) newHandle() Handle {
	h := t.reg.NewHandle()
	t.refs[h] = 1
	return h
}

func (t *GroupTable) share(h Handle) {
	t.refs[h]++
}

// drop removes the handle from the registry once no slot holds it.
func (t *GroupTable) drop(h Handle) {
	if h == NoHandle {
		return
	}
	t.refs[h]--
	if t.refs[h] <= 0 {
		delete(t.refs, h)
		t.reg.RemoveHandle(h)
	}
}

func (t *GroupTable) shared(h Handle) bool {
	return t.refs[h] > 1
}

// Slot returns the slot at index, or nil when out of range.
func (t *GroupTable) Slot(index int) *Slot {
	if index < 0 || index >= MaxChannels {
		return nil
	}
	return &t.slots[index]
}

// ActiveLength is the number of slots a list view shows, including the
// trailing "Mapping..." slot.
func (t *GroupTable) ActiveLength() int {
	return t.activeLength
}

// Bound reports whether the slot at index has a parameter target.
func (t *GroupTable) Bound(index int) bool {
	s := t.Slot(index)
	if s == nil {
		return false
	}
	_, ok := t.reg.Target(s.handle)
	return ok
}

// Complete reports whether the slot at index has both a CC and a target.
func (t *GroupTable) Complete(index int) bool {
	s := t.Slot(index)
	return s != nil && s.HasCC() && t.Bound(index)
}

// ClearSlot unsets the CC, detaches the target and resets the smoother.
func (t *GroupTable) ClearSlot(index int) {
	if !t.clear(index) {
		return
	}
	t.RecomputeActiveLength()
}

func (t *GroupTable) clear(index int) bool {
	s := t.Slot(index)
	if s == nil {
		return false
	}
	s.cc = NoCC
	if t.shared(s.handle) {
		// Other slots keep the binding.
		t.drop(s.handle)
		s.handle = t.newHandle()
	} else {
		t.reg.Release(s.handle)
	}
	s.smoother.Reset()
	return true
}

// ClearAll clears every slot and leaves the table with no active length.
func (t *GroupTable) ClearAll() {
	for i := range t.slots {
		t.clear(i)
	}
	t.activeLength = 0
}

// RecomputeActiveLength finds the last non-empty slot and reserves one
// empty slot after it when capacity allows.
func (t *GroupTable) RecomputeActiveLength() {
	id := MaxChannels - 1
	for ; id >= 0; id-- {
		if t.slots[id].HasCC() || t.Bound(id) {
			break
		}
	}
	n := id + 1
	if n < MaxChannels {
		n++
	}
	t.activeLength = n
}

// BindCC assigns cc to the slot at index and resets its smoother and the
// cached value. It returns false, changing nothing, when the slot already
// carries cc or the request is out of range.
func (t *GroupTable) BindCC(index, cc int, cache *ValueCache) bool {
	s := t.Slot(index)
	if s == nil || cc < 0 || cc >= NumKeys || s.cc == cc {
		return false
	}
	s.cc = cc
	s.smoother.Reset()
	if cache != nil {
		cache.Clear(cc)
	}
	t.RecomputeActiveLength()
	return true
}

// SetCC restores a controller number without touching the cache. Used when
// rebuilding a table from a document.
func (t *GroupTable) SetCC(index, cc int) {
	s := t.Slot(index)
	if s == nil {
		return
	}
	if cc < 0 || cc >= NumKeys {
		cc = NoCC
	}
	s.cc = cc
	s.smoother.Reset()
}

// BindParam attaches target to the slot at index and reports whether the
// slot ended up bound. When the registry already tracks that target the
// existing handle is shared instead of creating a duplicate binding.
// overwrite is passed through to Registry.Bind.
func (t *GroupTable) BindParam(index int, target Target, overwrite bool) bool {
	s := t.Slot(index)
	if s == nil || !target.Valid() {
		return false
	}
	if h, ok := t.reg.Lookup(target); ok {
		if h != s.handle {
			t.drop(s.handle)
			s.handle = h
			t.share(h)
		}
	} else {
		if t.shared(s.handle) {
			t.drop(s.handle)
			s.handle = t.newHandle()
		}
		t.reg.Bind(s.handle, target, overwrite)
	}
	s.smoother.Reset()
	t.RecomputeActiveLength()
	_, bound := t.reg.Target(s.handle)
	return bound
}

// NextIncomplete returns the first index after from whose slot lacks a CC
// or a target.
func (t *GroupTable) NextIncomplete(from int) (int, bool) {
	for id := from + 1; id < MaxChannels; id++ {
		if !t.Complete(id) {
			return id, true
		}
	}
	return 0, false
}
