package config

import (
	"errors"
	"net/url"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNoListener                 = errors.New("no listener defined, please specify at least one -listen-api or a -lookup")
	ErrLookupFormat               = errors.New("lookup must be given as country:prefix:number")
	ErrTwilioNoAccountSID         = errors.New("twilio-account-sid must be defined")
	ErrTwilioNoAuthToken          = errors.New("twilio-auth-token or twilio-auth-token-file must be defined")
	ErrTwilioURLUnsupportedScheme = errors.New("twilio-lookup-url scheme must be either http:// or https://")
	ErrTwilioInvalidRateLimit     = errors.New("twilio-rate-limit must be greater than or equal to 0")
	ErrTwilioInvalidBurst         = errors.New("twilio-rate-limit-burst must be greater than 0 when rate limiting is enabled")
	ErrCacheUnknownStore          = errors.New("cache-store must be one of 'memory', 'lru' or 'disk'")
	ErrCacheInvalidExpiry         = errors.New("cache-expiry must be greater than or equal to 0")
	ErrCacheInvalidMaxEntries     = errors.New("cache-max-entries must be greater than 0 for the lru store")
	ErrCacheNoDir                 = errors.New("cache-dir must be defined for the disk store")
)

// Validate checks the configuration and returns every problem found
func Validate(config *Config) error {
	var result *multierror.Error

	if len(config.ListenAPI) == 0 && config.General.Lookup == nil {
		result = multierror.Append(result, ErrNoListener)
	}

	result = multierror.Append(result, validateTwilioConfig(config)...)
	result = multierror.Append(result, validateCacheConfig(config)...)

	return result.ErrorOrNil()
}

func validateTwilioConfig(config *Config) []error {
	var errs []error

	if config.Twilio.AccountSID == "" {
		errs = append(errs, ErrTwilioNoAccountSID)
	}

	if config.Twilio.AuthToken == "" {
		errs = append(errs, ErrTwilioNoAuthToken)
	}

	u, err := url.Parse(config.Twilio.LookupURL)
	if err != nil {
		errs = append(errs, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		// url.Parse ensures that the Scheme attribute is always lower case.
		errs = append(errs, ErrTwilioURLUnsupportedScheme)
	}

	if config.Twilio.RateLimit < 0 {
		errs = append(errs, ErrTwilioInvalidRateLimit)
	}

	if config.Twilio.RateLimit > 0 && config.Twilio.RateLimitBurst < 1 {
		errs = append(errs, ErrTwilioInvalidBurst)
	}

	return errs
}

func validateCacheConfig(config *Config) []error {
	var errs []error

	if config.Cache.Expiry < 0 {
		errs = append(errs, ErrCacheInvalidExpiry)
	}

	switch config.Cache.Store {
	case StoreMemory:
	case StoreLRU:
		if config.Cache.MaxEntries < 1 {
			errs = append(errs, ErrCacheInvalidMaxEntries)
		}
	case StoreDisk:
		if config.Cache.Dir == "" {
			errs = append(errs, ErrCacheNoDir)
		}
	default:
		errs = append(errs, ErrCacheUnknownStore)
	}

	return errs
}
