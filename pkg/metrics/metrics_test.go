package metrics_test

import (
	"testing"

	"github.com/Astemirdum/library-circulation/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Loans.WithLabelValues(metrics.ResultOK).Inc()
	m.Fines.Add(3)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Loans.WithLabelValues(metrics.ResultOK)))
	require.Equal(t, 3.0, testutil.ToFloat64(m.Fines))

	n, err := testutil.GatherAndCount(reg, "circulation_loans_total", "circulation_fines_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestNew_Unregistered(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.New(nil).BooksRegistered.Inc()
		metrics.New(nil).BooksRegistered.Inc()
	})
}
