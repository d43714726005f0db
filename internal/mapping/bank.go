package mapping

// Bank is every piece of mapping state of one engine: the group tables,
// their CC caches, the key router and the learn session. It has no locking;
// the owner serializes access.
type Bank struct {
	reg    Registry
	Tables [NumGroups]*GroupTable
	Caches [NumGroups]ValueCache
	Keys   *Router
	Learn  LearnSession
}

// NewBank allocates the tables against reg and focuses focusKey.
func NewBank(reg Registry, focusKey int) *Bank {
	b := &Bank{reg: reg, Keys: NewRouter(focusKey)}
	refs := handleRefs{}
	for g := range b.Tables {
		b.Tables[g] = newGroupTable(reg, refs)
		b.Caches[g].Reset()
	}
	return b
}

// Registry returns the registry the bank's handles belong to.
func (b *Bank) Registry() Registry {
	return b.reg
}

// Close removes every handle the bank created.
func (b *Bank) Close() {
	for _, t := range b.Tables {
		t.Close()
	}
}

// Table returns the table of group g, or nil.
func (b *Bank) Table(g int) *GroupTable {
	if g < 0 || g >= NumGroups {
		return nil
	}
	return b.Tables[g]
}

// Cache returns the CC cache of group g, or nil.
func (b *Bank) Cache(g int) *ValueCache {
	if g < 0 || g >= NumGroups {
		return nil
	}
	return &b.Caches[g]
}

// Slot resolves ref, or returns nil.
func (b *Bank) Slot(ref SlotRef) *Slot {
	t := b.Table(ref.Group)
	if t == nil {
		return nil
	}
	return t.Slot(ref.Index)
}

// ClearAll stops any learn and clears every table.
func (b *Bank) ClearAll() {
	b.Learn.Stop()
	for _, t := range b.Tables {
		t.ClearAll()
	}
}

// Reset clears every table, reserves the "Mapping..." slot in each and
// forgets every cached CC value.
func (b *Bank) Reset() {
	b.ClearAll()
	for g, t := range b.Tables {
		t.RecomputeActiveLength()
		b.Caches[g].Reset()
	}
}

// SeedCache copies the live value of every bound, bounded target of group g
// into its cache so relative encoders resume from the parameter position.
func (b *Bank) SeedCache(g int) {
	t := b.Table(g)
	if t == nil {
		return
	}
	for id := 0; id < t.ActiveLength(); id++ {
		s := t.Slot(id)
		if !s.HasCC() {
			continue
		}
		if v, ok := b.reg.ScaledValue(s.handle); ok {
			b.Caches[g].Set(s.cc, v*MaxValue)
		}
	}
}

// BeginLearn arms the session on ref.
func (b *Bank) BeginLearn(ref SlotRef) bool {
	return b.Learn.Begin(ref)
}

// CancelLearn disarms the session if it is armed on ref.
func (b *Bank) CancelLearn(ref SlotRef) {
	b.Learn.Cancel(ref)
}

// LearnCC feeds a controller number to the armed session.
func (b *Bank) LearnCC(cc int) bool {
	ref, ok := b.Learn.Slot()
	if !ok {
		return false
	}
	return b.Learn.CaptureCC(b.Tables[ref.Group], &b.Caches[ref.Group], cc)
}

// LearnParam feeds a touched parameter to the session armed on ref.
func (b *Bank) LearnParam(ref SlotRef, target Target) bool {
	if !b.Learn.Armed(ref) {
		return false
	}
	return b.Learn.CaptureParam(b.Tables[ref.Group], &b.Caches[ref.Group], target)
}

// ClearSlot clears ref and disarms a session armed anywhere.
func (b *Bank) ClearSlot(ref SlotRef) {
	t := b.Table(ref.Group)
	if t == nil {
		return
	}
	b.Learn.Stop()
	t.ClearSlot(ref.Index)
}
