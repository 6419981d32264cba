package constants

const (
	APIPrefix = "/v1"

	// MetricsPath is where prometheus scrapes the process.
	MetricsPath = "/metrics"

	// WebhookSignatureHeader carries the shared secret on outbound
	// task event deliveries.
	WebhookSignatureHeader = "X-Sitegrid-Signature"
)
