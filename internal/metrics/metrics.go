package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsTotal,
			Help: HelpTextActionsTotal,
		},
		[]string{LabelCommand, LabelOutcome},
	)

	DaysAdvanced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDaysAdvanced,
			Help: HelpTextDaysAdvanced,
		},
	)

	CreatureDeaths = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCreatureDeaths,
			Help: HelpTextCreatureDeaths,
		},
		[]string{LabelKind, LabelCause},
	)

	MoneyEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	Balance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBalance,
			Help: HelpTextBalance,
		},
	)

	Population = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNamePopulation,
			Help: HelpTextPopulation,
		},
		[]string{LabelKind},
	)

	ReportSinkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportSinkFails,
			Help: HelpTextReportSinkFails,
		},
		[]string{LabelSink},
	)

	WebhookPayloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhookPayloads,
			Help: HelpTextWebhookPayloads,
		},
		[]string{LabelOutcome},
	)
)
