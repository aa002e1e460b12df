package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the board's counters and histograms. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	exportRuns      *prometheus.CounterVec
	exportRows      prometheus.Counter
	bookings        prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		exportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "capster",
			Name:      "export_runs_total",
			Help:      "Spreadsheet export runs by outcome",
		}, []string{"status"}),
		exportRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "capster",
			Name:      "export_rows_total",
			Help:      "Visits appended to the spreadsheet",
		}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "capster",
			Name:      "bookings_total",
			Help:      "Appointment rows booked",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "capster",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.exportRuns, m.exportRows, m.bookings, m.requestDuration)
	return m
}

// ObserveExport records one export run. status is one of exported,
// up_to_date, empty, not_configured or failed.
func (m *Metrics) ObserveExport(status string, rows int) {
	if m == nil {
		return
	}
	m.exportRuns.WithLabelValues(status).Inc()
	if rows > 0 {
		m.exportRows.Add(float64(rows))
	}
}

func (m *Metrics) ObserveBooking(rows int) {
	if m == nil {
		return
	}
	m.bookings.Add(float64(rows))
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
