// Package metrics holds the prometheus collectors of the circulation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "circulation"

// Result label values.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultOnTime   = "on_time"
	ResultLate     = "late"
	ResultNotFound = "not_found"
)

type Collector struct {
	BooksRegistered prometheus.Counter
	UsersRegistered prometheus.Counter
	Loans           *prometheus.CounterVec
	Returns         *prometheus.CounterVec
	Fines           prometheus.Counter
}

// New registers the collectors in reg. A nil reg creates unregistered collectors.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		BooksRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_registered_total",
			Help:      "Number of registered books.",
		}),
		UsersRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Number of registered users.",
		}),
		Loans: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_total",
			Help:      "Borrow attempts by result.",
		}, []string{"result"}),
		Returns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "returns_total",
			Help:      "Return attempts by result.",
		}, []string{"result"}),
		Fines: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fines_total",
			Help:      "Sum of charged fines.",
		}),
	}
}
