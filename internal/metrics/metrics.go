package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for availability and booking flows.
type BookingMetrics struct {
	slotQueries   *prometheus.CounterVec
	bookings      *prometheus.CounterVec
	feedFallbacks *prometheus.CounterVec
	slotLatency   *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slot_queries_total",
			Help:      "Total slot availability computations",
		}, []string{"service", "degraded"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "bookings",
			Name:      "events_total",
			Help:      "Total booking lifecycle events",
		}, []string{"event"}),
		feedFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "feed_fallback_total",
			Help:      "Times the bookings feed failed and an empty index was used",
		}, []string{"source"}),
		slotLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slot_query_seconds",
			Help:      "Latency of slot availability requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotQueries, m.bookings, m.feedFallbacks, m.slotLatency)
	return m
}

func (m *BookingMetrics) ObserveSlotQuery(service string, degraded bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if degraded {
		label = "true"
	}
	m.slotQueries.WithLabelValues(service, label).Inc()
	m.slotLatency.WithLabelValues(service).Observe(seconds)
}

func (m *BookingMetrics) ObserveBooking(event string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(event).Inc()
}

func (m *BookingMetrics) ObserveFeedFallback(source string) {
	if m == nil {
		return
	}
	m.feedFallbacks.WithLabelValues(source).Inc()
}
