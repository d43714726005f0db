package mapping

// Unset marks a controller value that has not been observed.
const Unset = -1.0

// MaxValue is the top of the 7-bit controller range.
const MaxValue = 127.0

// ValueCache is the last known position of every CC number for one group.
type ValueCache [NumKeys]float64

// Reset marks every entry unset.
func (c *ValueCache) Reset() {
	for i := range c {
		c[i] = Unset
	}
}

// Get returns the value for cc and whether it has been observed.
func (c *ValueCache) Get(cc int) (float64, bool) {
	if cc < 0 || cc >= NumKeys || c[cc] < 0 {
		return Unset, false
	}
	return c[cc], true
}

// Set stores an absolute value for cc, clamped to [0, 127].
func (c *ValueCache) Set(cc int, v float64) {
	if cc < 0 || cc >= NumKeys {
		return
	}
	c[cc] = clamp(v, 0, MaxValue)
}

// Clear marks cc unset.
func (c *ValueCache) Clear(cc int) {
	if cc < 0 || cc >= NumKeys {
		return
	}
	c[cc] = Unset
}

// Add applies a relative move to cc and returns the new value. An unset
// entry moves from zero.
func (c *ValueCache) Add(cc int, delta float64) float64 {
	if cc < 0 || cc >= NumKeys {
		return Unset
	}
	base := c[cc]
	if base < 0 {
		base = 0
	}
	c[cc] = clamp(base+delta, 0, MaxValue)
	return c[cc]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
