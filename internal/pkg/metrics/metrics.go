package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the counters below.
const (
	OutcomeSuccess = "success"
	OutcomeReused  = "reused"
)

var (
	// LoginAttemptsTotal counts logins by outcome (success, reused or an error kind).
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_service_login_attempts_total",
		Help: "The total number of login attempts",
	}, []string{"outcome"})

	RegistrationAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_service_registration_attempts_total",
		Help: "The total number of service registration attempts",
	}, []string{"outcome"})

	TokenValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_service_token_validations_total",
		Help: "The total number of token validations",
	}, []string{"outcome"})

	// SubscriptionOperationsTotal counts ledger operations by operation and outcome.
	SubscriptionOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_service_subscription_operations_total",
		Help: "The total number of subscription ledger operations",
	}, []string{"operation", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "subscription_service_http_request_duration_seconds",
		Help:    "The HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
