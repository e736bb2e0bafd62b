package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LookupsTotal counts carrier lookups by outcome
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_lookups_total",
		Help: "The total number of carrier lookups by provider and outcome",
	}, []string{"provider", "outcome"})

	// CacheRequests counts lookup cache reads by store and result (hit, miss, error)
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_cache_requests_total",
		Help: "The number of lookup cache reads by store and result",
	}, []string{"store", "result"})

	// CacheWrites counts lookup cache writes by store and result (ok, error)
	CacheWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_cache_writes_total",
		Help: "The number of lookup cache writes by store and result",
	}, []string{"store", "result"})

	// CachedEntries is the number of entries held by the bounded lru store
	CachedEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "carrier_lookup_cached_entries",
		Help: "The number of lookup responses held in the lru cache",
	}, []string{"store"})

	// ProviderErrors counts provider failures by error code and whether they were reported
	ProviderErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_provider_errors_total",
		Help: "The number of failed provider lookups by error code",
	}, []string{"provider", "code", "reported"})

	// ErrorsReported counts errors forwarded to error tracking
	ErrorsReported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carrier_lookup_errors_reported_total",
		Help: "The number of errors forwarded to error tracking",
	})

	// TwilioAPIReqTotal counts Twilio Lookup API requests by status code
	TwilioAPIReqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_twilio_api_requests_total",
		Help: "The number of Twilio Lookup API requests by status code",
	}, []string{"status_code"})

	// TwilioAPICallDuration is the time it takes to get a response from the Twilio Lookup API
	TwilioAPICallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "carrier_lookup_twilio_api_call_duration",
		Help: "The time (in seconds) it takes to get a response from the Twilio Lookup API",
	}, []string{"status_code"})
)

// MustRegister registers all metrics with the default prometheus registry
func MustRegister() {
	prometheus.MustRegister(
		LookupsTotal,
		CacheRequests,
		CacheWrites,
		CachedEntries,
		ProviderErrors,
		ErrorsReported,
		TwilioAPIReqTotal,
		TwilioAPICallDuration,
	)
}
