package config

import (
	"time"

	"github.com/namsral/flag"
)

var (
	metricsAddress = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	lookup         = flag.String("lookup", "", "Resolve a single number given as country:prefix:number, print the result and exit")
	showVersion    = flag.Bool("version", false, "Show version")

	logFormat  = flag.String("log-format", "json", "The log output format: 'text' or 'json'")
	logVerbose = flag.Bool("log-verbose", false, "Verbose logging")

	sentryDSN         = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnvironment = flag.String("sentry-environment", "", "The environment for sentry crash reporting")

	twilioAccountSID     = flag.String("twilio-account-sid", "", "Twilio account SID used to authenticate lookup requests")
	twilioAuthToken      = flag.String("twilio-auth-token", "", "Twilio auth token used to authenticate lookup requests")
	twilioAuthTokenFile  = flag.String("twilio-auth-token-file", "", "File with the Twilio auth token, takes precedence over twilio-auth-token")
	twilioLookupURL      = flag.String("twilio-lookup-url", DefaultTwilioLookupURL, "Base URL of the Twilio Lookup API")
	twilioHTTPTimeout    = flag.Duration("twilio-http-timeout", 10*time.Second, "Twilio Lookup API HTTP client timeout (default: 10s)")
	twilioRateLimit      = flag.Float64("twilio-rate-limit", 0.0, "Rate limit Twilio Lookup API requests per second, 0 means is disabled")
	twilioRateLimitBurst = flag.Int("twilio-rate-limit-burst", 10, "Maximum burst of Twilio Lookup API requests allowed per second")

	cacheStore      = flag.String("cache-store", StoreMemory, "Lookup cache store: 'memory', 'lru' or 'disk'")
	cacheExpiry     = flag.Duration("cache-expiry", 30*24*time.Hour, "The maximum time a lookup response is stored in the cache, 0 means forever")
	cacheCleanup    = flag.Duration("cache-cleanup", 10*time.Minute, "The interval at which expired lookup responses are removed from the memory cache")
	cacheMaxEntries = flag.Int64("cache-max-entries", 100000, "The maximum number of lookup responses kept by the lru cache")
	cacheDir        = flag.String("cache-dir", "", "The directory where the disk cache stores lookup responses")

	serverReadTimeout       = flag.Duration("server-read-timeout", 5*time.Second, "ReadTimeout is the maximum duration for reading the entire request, including the body. A zero or negative value means there will be no timeout.")
	serverReadHeaderTimeout = flag.Duration("server-read-header-timeout", time.Second, "ReadHeaderTimeout is the amount of time allowed to read request headers. A zero or negative value means there will be no timeout.")
	serverWriteTimeout      = flag.Duration("server-write-timeout", 30*time.Second, "WriteTimeout is the maximum duration before timing out writes of the response. A zero or negative value means there will be no timeout.")
	serverShutdownTimeout   = flag.Duration("server-shutdown-timeout", 30*time.Second, "Carrier lookup server shutdown timeout (default: 30s)")

	// See initFlags()
	listenAPI AddressList
)

// initFlags will be called from LoadConfig
func initFlags() {
	flag.Var(&listenAPI, "listen-api", "The address(es) to listen on for carrier lookup API requests")

	// read from -config=/path/to/carrier-lookup-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}
