package mapping

// Router assigns every key to a group and tracks which key has focus.
type Router struct {
	groups       [NumKeys]int
	focusedKey   int
	focusedGroup int
	keyHeld      bool
}

// NewRouter returns a router with every key unassigned and focus on key.
func NewRouter(focus int) *Router {
	r := &Router{}
	r.focusedKey = clampKey(focus)
	return r
}

// GroupOf returns the group of key, 0 for out-of-range keys.
func (r *Router) GroupOf(key int) int {
	if key < 0 || key >= NumKeys {
		return 0
	}
	return r.groups[key]
}

// SetGroup assigns key to group, clamped to [0, NumGroups).
func (r *Router) SetGroup(key, group int) {
	if key < 0 || key >= NumKeys {
		return
	}
	r.groups[key] = clampGroup(group)
	if key == r.focusedKey {
		r.focusedGroup = r.groups[key]
	}
}

// Groups returns a copy of the key to group assignment.
func (r *Router) Groups() [NumKeys]int {
	return r.groups
}

// ResetGroups puts every key back into group 0.
func (r *Router) ResetGroups() {
	r.groups = [NumKeys]int{}
	r.focusedGroup = 0
}

// Focus returns the focused key and group.
func (r *Router) Focus() (key, group int) {
	return r.focusedKey, r.focusedGroup
}

// FocusedGroup returns the group the real-time loop drives.
func (r *Router) FocusedGroup() int {
	return r.focusedGroup
}

// Held reports whether the focused key is pressed.
func (r *Router) Held() bool {
	return r.keyHeld
}

// Passes reports whether a note on key may move focus. Keys of group 0 are
// reserved and only pass while the modifier is held.
func (r *Router) Passes(key int, modifier bool) bool {
	return modifier || r.GroupOf(key) != 0
}

// NoteOn focuses key. A zero velocity counts as a release.
func (r *Router) NoteOn(key int, velocity uint8) {
	r.focus(key)
	r.keyHeld = velocity > 0
}

// NoteOff focuses key and marks it released.
func (r *Router) NoteOff(key int) {
	r.focus(key)
	r.keyHeld = false
}

func (r *Router) focus(key int) {
	r.focusedKey = clampKey(key)
	r.focusedGroup = r.groups[r.focusedKey]
}

// Reassign moves the focused key delta groups, clamped to [0, NumGroups).
// It returns the new group.
func (r *Router) Reassign(delta int) int {
	r.SetGroup(r.focusedKey, r.groups[r.focusedKey]+delta)
	return r.groups[r.focusedKey]
}

func clampKey(k int) int {
	if k < 0 {
		return 0
	}
	if k >= NumKeys {
		return NumKeys - 1
	}
	return k
}

func clampGroup(g int) int {
	if g < 0 {
		return 0
	}
	if g >= NumGroups {
		return NumGroups - 1
	}
	return g
}
