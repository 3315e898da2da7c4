package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	prometheusRegistry *prometheus.Registry
	prometheusHandler  http.Handler
	panicTotal         prometheus.Counter
	requestCount       *prometheus.CounterVec
	statusCount        *prometheus.CounterVec
	notificationCount  *prometheus.CounterVec
	earningCount       *prometheus.CounterVec
	cancelConflicts    prometheus.Counter
	withdrawalRejected prometheus.Counter
}

var m *metrics

func init() {
	m = &metrics{
		prometheusRegistry: prometheus.NewRegistry(),
	}

	m.prometheusRegistry.Register(collectors.NewGoCollector())
	m.prometheusRegistry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.panicTotal = promauto.With(m.prometheusRegistry).NewCounter(prometheus.CounterOpts{
		Name: "http_server_panics_recovered_total",
		Help: "Total number of requests recovered after an internal panic.",
	})

	m.requestCount = promauto.With(m.prometheusRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_path_count",
			Help: "Application request path count",
		},
		[]string{"method", "uri", "status"},
	)

	m.statusCount = promauto.With(m.prometheusRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_status_count",
			Help: "Application request status count",
		},
		[]string{"status"},
	)

	m.notificationCount = promauto.With(m.prometheusRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_notifications_total",
			Help: "Provider notifications by provider and outcome (applied, duplicate, rejected, ignored).",
		},
		[]string{"provider", "outcome"},
	)

	m.earningCount = promauto.With(m.prometheusRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_earning_transitions_total",
			Help: "Earning ledger transitions by outcome.",
		},
		[]string{"outcome"},
	)

	m.cancelConflicts = promauto.With(m.prometheusRegistry).NewCounter(prometheus.CounterOpts{
		Name: "ledger_earning_cancel_conflicts_total",
		Help: "Refunds that hit an already-credited earning and need manual reconciliation.",
	})

	m.withdrawalRejected = promauto.With(m.prometheusRegistry).NewCounter(prometheus.CounterOpts{
		Name: "ledger_withdrawals_rejected_total",
		Help: "Withdrawal requests rejected for insufficient balance.",
	})

	m.prometheusHandler = promhttp.HandlerFor(
		m.prometheusRegistry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})
}

func Metrics() *metrics {
	return m
}

func (m *metrics) PanicInc() {
	m.panicTotal.Inc()
}

func (m *metrics) RequestInc(status int) {
	m.statusCount.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *metrics) RequestStatusInc(method, uri string, status int) {
	m.requestCount.WithLabelValues(method, uri, strconv.Itoa(status)).Inc()
}

func (m *metrics) NotificationInc(provider, outcome string) {
	m.notificationCount.WithLabelValues(provider, outcome).Inc()
}

func (m *metrics) EarningTransitionInc(outcome string) {
	m.earningCount.WithLabelValues(outcome).Inc()
}

func (m *metrics) CancelConflictInc() {
	m.cancelConflicts.Inc()
}

func (m *metrics) WithdrawalRejectedInc() {
	m.withdrawalRejected.Inc()
}

func (m *metrics) Handler() http.Handler {
	return m.prometheusHandler
}
