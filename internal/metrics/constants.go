package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "farmsim_http_requests_total"
	MetricNameHTTPRequestDuration  = "farmsim_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "farmsim_http_requests_in_flight"
)

// Game metric names
const (
	MetricNameActionsTotal    = "farmsim_actions_total"
	MetricNameDaysAdvanced    = "farmsim_days_advanced_total"
	MetricNameCreatureDeaths  = "farmsim_creature_deaths_total"
	MetricNameMoneyEarned     = "farmsim_money_earned_total"
	MetricNameMoneySpent      = "farmsim_money_spent_total"
	MetricNameBalance         = "farmsim_balance"
	MetricNamePopulation      = "farmsim_population"
	MetricNameReportSinkFails = "farmsim_report_sink_failures_total"
	MetricNameWebhookPayloads = "farmsim_webhook_payloads_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextActionsTotal    = "Player commands by verb and outcome"
	HelpTextDaysAdvanced    = "Total number of nights passed"
	HelpTextCreatureDeaths  = "Creatures lost by kind and cause"
	HelpTextMoneyEarned     = "Total money earned from sales"
	HelpTextMoneySpent      = "Total money spent on purchases and upgrades"
	HelpTextBalance         = "Current player balance"
	HelpTextPopulation      = "Living creatures by kind"
	HelpTextReportSinkFails = "Day reports a sink failed to store"
	HelpTextWebhookPayloads = "WhatsApp webhook callbacks by outcome"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelCommand = "command"
	LabelOutcome = "outcome"
	LabelKind    = "kind"
	LabelCause   = "cause"
	LabelSink    = "sink"
)

// HTTPLatencyBuckets covers fast in-memory handlers up to slow webhook replies.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
