package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "castctl",
			Subsystem: "sink",
			Name:      "frames_received_total",
			Help:      "Frames read off accepted connections.",
		},
		[]string{"opcode"},
	)
	bodyBytesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "castctl",
			Subsystem: "sink",
			Name:      "body_bytes_received_total",
			Help:      "Frame body bytes read off accepted connections.",
		},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "castctl",
			Subsystem: "sink",
			Name:      "decode_errors_total",
			Help:      "Frames or bodies that failed to decode.",
		},
		[]string{"reason"},
	)
	acksSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "castctl",
			Subsystem: "sink",
			Name:      "acks_sent_total",
			Help:      "Ack frames written back to clients.",
		},
	)
	openConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "castctl",
			Subsystem: "sink",
			Name:      "open_connections",
			Help:      "Currently accepted client connections.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "castctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"app", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "castctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesReceived, bodyBytesReceived, decodeErrors, acksSent,
			openConnections, httpRequests, httpDuration,
		)
	})
}

func RecordFrame(opcode uint32, bodyBytes int) {
	RegisterMetrics()
	framesReceived.WithLabelValues(opcodeLabel(opcode)).Inc()
	bodyBytesReceived.Add(float64(bodyBytes))
}

func RecordDecodeError(reason string) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(reason).Inc()
}

func RecordAck() {
	RegisterMetrics()
	acksSent.Inc()
}

func ConnOpened() {
	RegisterMetrics()
	openConnections.Inc()
}

func ConnClosed() {
	RegisterMetrics()
	openConnections.Dec()
}

func RecordHTTPRequest(app, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(app, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(app, method, path, statusLabel).Observe(duration.Seconds())
}

func opcodeLabel(opcode uint32) string {
	return "0x" + strconv.FormatUint(uint64(opcode), 16)
}
