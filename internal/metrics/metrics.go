// Package metrics exposes engine counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesTotal counts inbound MIDI messages.
	// Labels: kind (note, cc, other)
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pushmap",
		Subsystem: "midi",
		Name:      "messages_total",
		Help:      "Inbound MIDI messages by kind",
	}, []string{"kind"})

	// DroppedMessages counts messages lost to a full inbound queue.
	DroppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pushmap",
		Subsystem: "midi",
		Name:      "dropped_total",
		Help:      "Inbound MIDI messages dropped because the queue was full",
	})

	// CycleSeconds measures one control cycle.
	CycleSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pushmap",
		Subsystem: "engine",
		Name:      "cycle_seconds",
		Help:      "Duration of one control cycle",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})

	// LearnCommits counts slots completed through learn.
	LearnCommits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pushmap",
		Subsystem: "learn",
		Name:      "commits_total",
		Help:      "Slots bound through learn mode",
	})

	// ActiveSlots tracks the active length of each group table.
	// Labels: group
	ActiveSlots = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pushmap",
		Subsystem: "mapping",
		Name:      "active_slots",
		Help:      "Active length of each group table",
	}, []string{"group"})
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
