package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	}
	return 0
}

func TestCountersIncrement(t *testing.T) {
	c := MessagesTotal.WithLabelValues("cc")
	before := value(t, c)
	c.Inc()
	assert.Equal(t, before+1, value(t, c))

	g := ActiveSlots.WithLabelValues("3")
	g.Set(4)
	assert.Equal(t, 4.0, value(t, g))
}
