package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the booking core.
type Metrics struct {
	TicketsBooked      prometheus.Counter
	TicketsCancelled   prometheus.Counter
	BoardingsConfirmed prometheus.Counter
	BookingConflicts   prometheus.Counter
	BookingDuration    prometheus.Histogram
}

// New registers the booking metrics under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		TicketsBooked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_booked_total",
			Help:      "The total number of tickets issued",
		}),
		TicketsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_cancelled_total",
			Help:      "The total number of tickets cancelled",
		}),
		BoardingsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boardings_confirmed_total",
			Help:      "The total number of boardings confirmed by QR scan",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "The total number of bookings rejected due to seat conflicts",
		}),
		BookingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_duration_seconds",
			Help:      "Time taken by the booking transaction",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
