package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ParamWrites counts smoothed values pushed into host parameters.
var ParamWrites = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pushmap",
	Subsystem: "engine",
	Name:      "param_writes_total",
	Help:      "Smoothed values written to host parameters",
})
