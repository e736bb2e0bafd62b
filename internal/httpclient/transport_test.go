package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*prometheus.HistogramVec, *prometheus.CounterVec) {
	t.Helper()

	histVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: t.Name(),
	}, []string{"status_code"})

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: t.Name(),
	}, []string{"status_code"})

	return histVec, counterVec
}

func TestMeteredRoundTripper(t *testing.T) {
	histVec, counterVec := newTestMetrics(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":20404}`)
	}))
	defer server.Close()

	client := NewClient(Config{
		Transport: NewMeteredRoundTripper(nil, t.Name(), histVec, counterVec),
	})

	_, err := client.Execute(context.Background(), http.MethodGet, server.URL, Options{})
	require.Error(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(counterVec.WithLabelValues("404")))
	require.Equal(t, 1, testutil.CollectAndCount(histVec))
}

func TestMeteredRoundTripperCountsErrors(t *testing.T) {
	histVec, counterVec := newTestMetrics(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{
		Transport: NewMeteredRoundTripper(nil, t.Name(), histVec, counterVec),
	})

	_, err := client.Execute(context.Background(), http.MethodGet, url, Options{})
	require.Error(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(counterVec.WithLabelValues("error")))
}
