package config

import (
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"
)

// DefaultTwilioLookupURL is the production Twilio Lookup API
const DefaultTwilioLookupURL = "https://lookups.twilio.com"

// Supported cache stores
const (
	StoreMemory = "memory"
	StoreLRU    = "lru"
	StoreDisk   = "disk"
)

// Config stores all the config options relevant to the carrier lookup daemon.
type Config struct {
	General General
	Twilio  Twilio
	Cache   Cache
	Server  Server
	Log     Log
	Sentry  Sentry

	// ListenAPI holds the addresses passed with -listen-api
	ListenAPI []string
}

// General groups settings that can not be categorized under other head.
type General struct {
	MetricsAddress string
	ShowVersion    bool

	// Lookup is set when a single number is resolved from the command line
	Lookup *LookupTarget
}

// LookupTarget is a number given as country:prefix:number
type LookupTarget struct {
	Country string
	Prefix  string
	Number  string
}

// Twilio groups settings related to the Twilio Lookup API client
type Twilio struct {
	AccountSID     string
	AuthToken      string
	LookupURL      string
	HTTPTimeout    time.Duration
	RateLimit      float64
	RateLimitBurst int
}

// Cache configuration for lookup responses
type Cache struct {
	Store           string
	Expiry          time.Duration
	CleanupInterval time.Duration
	MaxEntries      int64
	Dir             string
}

// Server groups the API server timeouts
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

// ParseLookupTarget parses a country:prefix:number triple
func ParseLookupTarget(value string) (*LookupTarget, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrLookupFormat, value)
	}

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("%w: %q", ErrLookupFormat, value)
		}
	}

	return &LookupTarget{Country: parts[0], Prefix: parts[1], Number: parts[2]}, nil
}

func readAuthToken(tokenFile string) (string, error) {
	contents, err := ioutil.ReadFile(tokenFile)
	if err != nil {
		return "", fmt.Errorf("reading twilio auth token file: %w", err)
	}

	return strings.TrimSpace(string(contents)), nil
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			MetricsAddress: *metricsAddress,
			ShowVersion:    *showVersion,
		},
		Twilio: Twilio{
			AccountSID:     *twilioAccountSID,
			AuthToken:      *twilioAuthToken,
			LookupURL:      strings.TrimRight(*twilioLookupURL, "/"),
			HTTPTimeout:    *twilioHTTPTimeout,
			RateLimit:      *twilioRateLimit,
			RateLimitBurst: *twilioRateLimitBurst,
		},
		Cache: Cache{
			Store:           strings.ToLower(*cacheStore),
			Expiry:          *cacheExpiry,
			CleanupInterval: *cacheCleanup,
			MaxEntries:      *cacheMaxEntries,
			Dir:             *cacheDir,
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			ShutdownTimeout:   *serverShutdownTimeout,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},
		ListenAPI: listenAPI.Addresses(),
	}

	var err error

	if *twilioAuthTokenFile != "" {
		if config.Twilio.AuthToken, err = readAuthToken(*twilioAuthTokenFile); err != nil {
			return nil, err
		}
	}

	if *lookup != "" {
		if config.General.Lookup, err = ParseLookupTarget(*lookup); err != nil {
			return nil, err
		}
	}

	if config.General.ShowVersion {
		return config, nil
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig prints the configuration in use, without credentials
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":    flag.DefaultConfigFlagname,
		"listen-api":                 strings.Join(config.ListenAPI, ","),
		"metrics-address":            config.General.MetricsAddress,
		"log-format":                 config.Log.Format,
		"log-verbose":                config.Log.Verbose,
		"sentry-environment":         config.Sentry.Environment,
		"twilio-account-sid":         config.Twilio.AccountSID,
		"twilio-lookup-url":          config.Twilio.LookupURL,
		"twilio-http-timeout":        config.Twilio.HTTPTimeout,
		"twilio-rate-limit":          config.Twilio.RateLimit,
		"twilio-rate-limit-burst":    config.Twilio.RateLimitBurst,
		"cache-store":                config.Cache.Store,
		"cache-expiry":               config.Cache.Expiry,
		"cache-cleanup":              config.Cache.CleanupInterval,
		"cache-max-entries":          config.Cache.MaxEntries,
		"cache-dir":                  config.Cache.Dir,
		"server-read-timeout":        config.Server.ReadTimeout,
		"server-read-header-timeout": config.Server.ReadHeaderTimeout,
		"server-write-timeout":       config.Server.WriteTimeout,
		"server-shutdown-timeout":    config.Server.ShutdownTimeout,
	}).Debug("Start daemon with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
