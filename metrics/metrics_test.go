package metrics

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsVectorsCanBeScraped(t *testing.T) {
	reg := prometheus.NewRegistry()

	// vectors will only be available in /metrics after a label has been set/incremented
	reg.MustRegister(
		LookupsTotal,
		CacheRequests,
		ProviderErrors,
		TwilioAPIReqTotal,
		TwilioAPICallDuration,
	)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	testServer := httptest.NewServer(handler)
	defer testServer.Close()

	LookupsTotal.WithLabelValues("twilio", "resolved").Inc()
	CacheRequests.WithLabelValues("memory", "hit").Inc()
	ProviderErrors.WithLabelValues("twilio", "20404", "false").Inc()
	TwilioAPICallDuration.WithLabelValues("200").Observe(0.02)
	TwilioAPIReqTotal.WithLabelValues("200").Inc()

	c, err := TwilioAPIReqTotal.GetMetricWithLabelValues("200")
	require.NoError(t, err)
	require.Equal(t, float64(1), testutil.ToFloat64(c))

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, metricFamilies, 5)

	res, err := http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := ioutil.ReadAll(res.Body)

	require.Contains(t, string(body), `carrier_lookup_lookups_total{outcome="resolved",provider="twilio"}`)
	require.Contains(t, string(body), `carrier_lookup_cache_requests_total{result="hit",store="memory"}`)
	require.Contains(t, string(body), `carrier_lookup_provider_errors_total{code="20404",provider="twilio",reported="false"}`)
	require.Contains(t, string(body), `carrier_lookup_twilio_api_requests_total{status_code="200"}`)
	require.Contains(t, string(body), `carrier_lookup_twilio_api_call_duration_count{status_code="200"}`)
}
