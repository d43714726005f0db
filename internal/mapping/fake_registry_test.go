package mapping

import "fmt"

type fakeParam struct {
	value     float64
	unbounded bool
}

type fakeRegistry struct {
	next    Handle
	handles map[Handle]*Target
	params  map[Target]*fakeParam
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		handles: map[Handle]*Target{},
		params:  map[Target]*fakeParam{},
	}
}

func (r *fakeRegistry) addParam(t Target, value float64) *fakeParam {
	p := &fakeParam{value: value}
	r.params[t] = p
	return p
}

func (r *fakeRegistry) NewHandle() Handle {
	r.next++
	r.handles[r.next] = nil
	return r.next
}

func (r *fakeRegistry) RemoveHandle(h Handle) {
	delete(r.handles, h)
}

func (r *fakeRegistry) Lookup(t Target) (Handle, bool) {
	for h, bound := range r.handles {
		if bound != nil && *bound == t {
			return h, true
		}
	}
	return NoHandle, false
}

func (r *fakeRegistry) Bind(h Handle, t Target, overwrite bool) {
	if _, ok := r.handles[h]; !ok {
		return
	}
	if other, ok := r.Lookup(t); ok && other != h {
		if !overwrite {
			r.handles[h] = nil
			return
		}
		r.handles[other] = nil
	}
	r.handles[h] = &t
}

func (r *fakeRegistry) Release(h Handle) {
	if _, ok := r.handles[h]; ok {
		r.handles[h] = nil
	}
}

func (r *fakeRegistry) Target(h Handle) (Target, bool) {
	t := r.handles[h]
	if t == nil {
		return Target{}, false
	}
	return *t, true
}

func (r *fakeRegistry) ScaledValue(h Handle) (float64, bool) {
	t, ok := r.Target(h)
	if !ok {
		return 0, false
	}
	p, ok := r.params[t]
	if !ok || p.unbounded {
		return 0, false
	}
	return p.value, true
}

func (r *fakeRegistry) SetScaledValue(h Handle, v float64) {
	if t, ok := r.Target(h); ok {
		if p, ok := r.params[t]; ok {
			p.value = v
		}
	}
}

func (r *fakeRegistry) DisplayName(h Handle) string {
	t, _ := r.Target(h)
	return fmt.Sprintf("param %s", t)
}
