package observability

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/psyc/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psyc",
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Render service requests by route and render outcome.",
		},
		[]string{"node", "route", "kind", "result", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "psyc",
			Subsystem: "service",
			Name:      "request_duration_seconds",
			Help:      "Render service request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "route", "kind"},
	)
	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psyc",
			Subsystem: "render",
			Name:      "total",
			Help:      "Render calls by value kind and result.",
		},
		[]string{"kind", "result"},
	)
	renderBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "psyc",
			Subsystem: "render",
			Name:      "bytes",
			Help:      "Size of successfully rendered values.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requests, requestDuration, renders, renderBytes)
	})
}

// RecordRequest counts one render service request. kind and result come
// from MarkRender, or "none" when the request never reached a renderer.
func RecordRequest(node, route, kind, result string, status int, duration time.Duration) {
	RegisterMetrics()
	requests.WithLabelValues(node, route, kind, result, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(node, route, kind).Observe(duration.Seconds())
}

// RecordRender counts one render of kind ("packet", "list", "table",
// "packet_id") and, on success, its size.
func RecordRender(kind string, size int, err error) {
	RegisterMetrics()
	renders.WithLabelValues(kind, RenderResult(err)).Inc()
	if err == nil {
		renderBytes.WithLabelValues(kind).Observe(float64(size))
	}
}

// RenderResult maps a renderer error onto a bounded metric label.
func RenderResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, protocol.ErrBufferTooSmall):
		return "capacity"
	case errors.Is(err, protocol.ErrModifierNameMissing):
		return "name_missing"
	case errors.Is(err, protocol.ErrMethodMissing):
		return "method_missing"
	case errors.Is(err, protocol.ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "invalid"
	}
}
