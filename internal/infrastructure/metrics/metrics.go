package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Charge metrics
	ChargesCreated prometheus.Counter
	ChargeAmount   prometheus.Histogram
	ChargeErrors   *prometheus.CounterVec

	// User and account metrics
	UsersRegistered prometheus.Counter
	AccountsCreated prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fakebank_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fakebank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fakebank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakebank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Charge metrics
		ChargesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fakebank_charges_created_total",
			Help: "Total number of charges created",
		}),
		ChargeAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fakebank_charge_amount",
			Help:    "Charge amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ChargeErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakebank_charge_errors_total",
				Help: "Total number of charge errors by type",
			},
			[]string{"error_type"},
		),

		// User and account metrics
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fakebank_users_registered_total",
			Help: "Total number of registered users",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fakebank_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakebank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"kind"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fakebank_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"kind"},
		),
	}
}
