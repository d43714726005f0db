package mapping

import "fmt"

// Handle is an opaque reference to a parameter handle owned by a Registry.
type Handle int

// NoHandle is the zero reference; registries never hand it out.
const NoHandle Handle = 0

// Target identifies a host parameter by module and parameter id.
// Negative ids mean "unbound" in the persisted document.
type Target struct {
	ModuleID int64
	ParamID  int
}

// Unbound is the target written for slots without a parameter.
var Unbound = Target{ModuleID: -1, ParamID: -1}

// Valid reports whether the target refers to a parameter.
func (t Target) Valid() bool {
	return t.ModuleID >= 0 && t.ParamID >= 0
}

func (t Target) String() string {
	if !t.Valid() {
		return "unbound"
	}
	return fmt.Sprintf("%d/%d", t.ModuleID, t.ParamID)
}

// Registry is the host's parameter-handle registry. The engine holds
// handles it does not own and only mutates them through these calls.
type Registry interface {
	// NewHandle creates an unbound handle owned by the caller.
	NewHandle() Handle
	// RemoveHandle destroys a handle created with NewHandle.
	RemoveHandle(h Handle)

	// Lookup returns the handle already tracking t, if any.
	Lookup(t Target) (Handle, bool)
	// Bind points h at t. When overwrite is set, other handles tracking t
	// are released; otherwise h stays unbound if t is already tracked.
	Bind(h Handle, t Target, overwrite bool)
	// Release unbinds h.
	Release(h Handle)
	// Target returns what h is bound to. ok is false for unbound handles
	// and for handles whose module has been removed.
	Target(h Handle) (t Target, ok bool)

	// ScaledValue returns the parameter position normalized to [0, 1].
	// ok is false when the parameter is missing or has no finite range.
	ScaledValue(h Handle) (v float64, ok bool)
	// SetScaledValue writes a normalized position.
	SetScaledValue(h Handle, v float64)
	// DisplayName returns a human readable label for the bound parameter.
	DisplayName(h Handle) string
}
