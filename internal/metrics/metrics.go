package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "virtualgift_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "virtualgift_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "virtualgift_credits_total",
			Help: "Total number of point credits by trigger",
		},
		[]string{"trigger"},
	)

	PostbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "virtualgift_postbacks_total",
			Help: "Offer-network postbacks by outcome",
		},
		[]string{"outcome"},
	)

	WheelSpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "virtualgift_wheel_spins_total",
			Help: "Prize wheel spins by landed sector",
		},
		[]string{"sector"},
	)

	DailyClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "virtualgift_daily_claims_total",
			Help: "Daily reward claims by result",
		},
		[]string{"result"},
	)

	RedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "virtualgift_redemptions_total",
			Help: "Total number of prize redemptions",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCredit(trigger string) {
	CreditsTotal.WithLabelValues(trigger).Inc()
}

func RecordPostback(outcome string) {
	PostbacksTotal.WithLabelValues(outcome).Inc()
}

func RecordWheelSpin(sector string) {
	WheelSpinsTotal.WithLabelValues(sector).Inc()
}

func RecordDailyClaim(result string) {
	DailyClaimsTotal.WithLabelValues(result).Inc()
}

func RecordRedemption() {
	RedemptionsTotal.Inc()
}
