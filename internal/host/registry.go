// Package host is a small in-memory parameter host. It stands in for the
// modular host the engine would normally be embedded in.
package host

import (
	"math"
	"sort"

	"github.com/PixPMusic/pushmap/internal/mapping"
)

// Param is one automatable parameter of a module. A parameter whose Min or
// Max is infinite has no finite range.
type Param struct {
	ID      int
	Name    string
	Min     float64
	Max     float64
	Default float64

	value float64
}

// Bounded reports whether the parameter has a finite, non-empty range.
func (p *Param) Bounded() bool {
	return !math.IsInf(p.Min, 0) && !math.IsInf(p.Max, 0) && p.Max > p.Min
}

// Value is the parameter value in its own units.
func (p *Param) Value() float64 {
	return p.value
}

// Module is a named set of parameters.
type Module struct {
	ID     int64
	Name   string
	Params []Param
}

// NewModule creates a module with every parameter at its default.
func NewModule(id int64, name string, params ...Param) *Module {
	m := &Module{ID: id, Name: name, Params: params}
	for i := range m.Params {
		m.Params[i].value = m.Params[i].Default
	}
	return m
}

// GetParam returns a parameter by ID, or nil if not found
func (m *Module) GetParam(id int) *Param {
	for i := range m.Params {
		if m.Params[i].ID == id {
			return &m.Params[i]
		}
	}
	return nil
}

type handle struct {
	target mapping.Target
	bound  bool
}

// WriteHook observes every value written through a handle.
type WriteHook func(t mapping.Target, value float64)

// Registry implements mapping.Registry over a list of modules. It is not
// safe for concurrent use; the engine owner serializes access.
type Registry struct {
	Modules []*Module

	handles map[mapping.Handle]*handle
	next    mapping.Handle
	onWrite WriteHook
}

var _ mapping.Registry = (*Registry)(nil)

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Modules: []*Module{},
		handles: map[mapping.Handle]*handle{},
	}
}

// OnWrite registers a hook called after each SetScaledValue.
func (r *Registry) OnWrite(fn WriteHook) {
	r.onWrite = fn
}

// AddModule adds a module, replacing one with the same ID
func (r *Registry) AddModule(m *Module) {
	for i := range r.Modules {
		if r.Modules[i].ID == m.ID {
			r.Modules[i] = m
			return
		}
	}
	r.Modules = append(r.Modules, m)
	sort.Slice(r.Modules, func(i, j int) bool {
		return r.Modules[i].ID < r.Modules[j].ID
	})
}

// GetModule returns a module by ID, or nil if not found
func (r *Registry) GetModule(id int64) *Module {
	for _, m := range r.Modules {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// RemoveModule removes a module by ID and unbinds every handle pointing at it
func (r *Registry) RemoveModule(id int64) bool {
	for i, m := range r.Modules {
		if m.ID != id {
			continue
		}
		r.Modules = append(r.Modules[:i], r.Modules[i+1:]...)
		for _, h := range r.handles {
			if h.bound && h.target.ModuleID == id {
				h.bound = false
				h.target = mapping.Unbound
			}
		}
		return true
	}
	return false
}

// Param resolves a target to its parameter, or nil.
func (r *Registry) Param(t mapping.Target) *Param {
	m := r.GetModule(t.ModuleID)
	if m == nil {
		return nil
	}
	return m.GetParam(t.ParamID)
}

// SetValue moves a parameter directly, as a user turning a knob on the host
// would. The value is clamped to the parameter's range.
func (r *Registry) SetValue(t mapping.Target, v float64) bool {
	p := r.Param(t)
	if p == nil {
		return false
	}
	if p.Bounded() {
		v = math.Max(p.Min, math.Min(p.Max, v))
	}
	p.value = v
	return true
}

// Handles returns the number of live handles.
func (r *Registry) Handles() int {
	return len(r.handles)
}

func (r *Registry) NewHandle() mapping.Handle {
	r.next++
	r.handles[r.next] = &handle{target: mapping.Unbound}
	return r.next
}

func (r *Registry) RemoveHandle(h mapping.Handle) {
	delete(r.handles, h)
}

func (r *Registry) Lookup(t mapping.Target) (mapping.Handle, bool) {
	if !t.Valid() {
		return mapping.NoHandle, false
	}
	for id, h := range r.handles {
		if h.bound && h.target == t {
			return id, true
		}
	}
	return mapping.NoHandle, false
}

func (r *Registry) Bind(id mapping.Handle, t mapping.Target, overwrite bool) {
	h, ok := r.handles[id]
	if !ok {
		return
	}
	if !t.Valid() || r.Param(t) == nil {
		h.bound = false
		h.target = mapping.Unbound
		return
	}
	if other, tracked := r.Lookup(t); tracked && other != id {
		if !overwrite {
			h.bound = false
			h.target = mapping.Unbound
			return
		}
		r.Release(other)
	}
	h.target = t
	h.bound = true
}

func (r *Registry) Release(id mapping.Handle) {
	if h, ok := r.handles[id]; ok {
		h.bound = false
		h.target = mapping.Unbound
	}
}

func (r *Registry) Target(id mapping.Handle) (mapping.Target, bool) {
	h, ok := r.handles[id]
	if !ok || !h.bound || r.Param(h.target) == nil {
		return mapping.Unbound, false
	}
	return h.target, true
}

func (r *Registry) ScaledValue(id mapping.Handle) (float64, bool) {
	t, ok := r.Target(id)
	if !ok {
		return 0, false
	}
	p := r.Param(t)
	if p == nil || !p.Bounded() {
		return 0, false
	}
	return (p.value - p.Min) / (p.Max - p.Min), true
}

func (r *Registry) SetScaledValue(id mapping.Handle, v float64) {
	t, ok := r.Target(id)
	if !ok {
		return
	}
	p := r.Param(t)
	if p == nil || !p.Bounded() {
		return
	}
	v = math.Max(0, math.Min(1, v))
	p.value = p.Min + v*(p.Max-p.Min)
	if r.onWrite != nil {
		r.onWrite(t, p.value)
	}
}

func (r *Registry) DisplayName(id mapping.Handle) string {
	t, ok := r.Target(id)
	if !ok {
		return ""
	}
	m := r.GetModule(t.ModuleID)
	if m == nil {
		return ""
	}
	p := m.GetParam(t.ParamID)
	if p == nil {
		return m.Name
	}
	return m.Name + " " + p.Name
}
