package twilio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier/cache"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
	"gitlab.com/phone-carrier/carrier-lookup/internal/httpclient"
	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

//go:generate mockgen -source=resolver.go -destination=mock/mock_twilio.go -package=mock

// Provider tags Twilio responses in the lookup cache
const Provider = "twilio"

// codeNotFound is the Twilio error code of an unknown phone number
const codeNotFound = 20404

// Picker reads cached lookup responses
type Picker interface {
	Pick(ctx context.Context, key cache.Key) (carrier.Response, error)
}

// Adder writes lookup responses to the cache
type Adder interface {
	Add(ctx context.Context, key cache.Key, response carrier.Response)
}

// Executor performs HTTP requests against the Lookup API
type Executor interface {
	Execute(ctx context.Context, method, url string, opts httpclient.Options) (*httpclient.Response, error)
}

// Reporter receives unexpected provider errors
type Reporter interface {
	Report(ctx context.Context, err error)
}

// Resolver resolves phone numbers to their carrier through the Twilio Lookup
// API. Cached responses, including recorded failures, are served without
// calling Twilio.
type Resolver struct {
	accountSID string
	authToken  string
	lookupURL  string

	picker   Picker
	adder    Adder
	executor Executor
	reporter Reporter
}

// NewResolver creates a Resolver authenticating with the configured account
func NewResolver(cfg *config.Twilio, picker Picker, adder Adder, executor Executor, reporter Reporter) *Resolver {
	return &Resolver{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		lookupURL:  strings.TrimRight(cfg.LookupURL, "/"),
		picker:     picker,
		adder:      adder,
		executor:   executor,
		reporter:   reporter,
	}
}

// Resolve returns the carrier of the number. Every failure matches
// carrier.ErrUnresolvableLookup.
func (r *Resolver) Resolve(ctx context.Context, country, prefix, number string) (lookup *carrier.Lookup, err error) {
	defer func() {
		outcome := "resolved"
		if err != nil {
			outcome = "unresolvable"
		}

		metrics.LookupsTotal.WithLabelValues(Provider, outcome).Inc()
	}()

	key := cache.NewKey(Provider, country, prefix, number)
	logger := log.ContextLogger(ctx).WithFields(log.Fields{
		"provider": Provider,
		"country":  country,
		"prefix":   prefix,
	})

	response, err := r.picker.Pick(ctx, key)
	switch {
	case err == nil:
		return newLookup(response)
	case errors.Is(err, cache.ErrNoSuchEntry):
	default:
		logger.WithError(err).Warn("failed to read lookup cache, querying provider")
	}

	resp, err := r.executor.Execute(ctx, http.MethodGet, r.endpoint(prefix, number), httpclient.Options{
		Auth: [2]string{r.accountSID, r.authToken},
	})
	if err != nil {
		return nil, r.fail(ctx, logger, key, err)
	}

	r.adder.Add(ctx, key, resp.Body)

	lookup, err = newLookup(resp.Body)
	if err != nil {
		logger.Warn("provider response is missing carrier fields")
	}

	return lookup, err
}

func (r *Resolver) endpoint(prefix, number string) string {
	return fmt.Sprintf("%s/v1/PhoneNumbers/%s?Type=carrier", r.lookupURL, url.PathEscape(prefix+number))
}

// fail records a failed provider request. Failure payloads are cached so
// that the same number is not requested again.
func (r *Resolver) fail(ctx context.Context, logger *logrus.Entry, key cache.Key, err error) error {
	var httpErr *httpclient.Error
	if !errors.As(err, &httpErr) || httpErr.Response == nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("lookup canceled by the caller")
			metrics.ProviderErrors.WithLabelValues(Provider, "none", "false").Inc()

			return carrier.NewProviderError(nil, nil, err)
		}

		logger.WithError(err).Error("provider request failed")
		metrics.ProviderErrors.WithLabelValues(Provider, "none", "true").Inc()
		r.reporter.Report(ctx, err)

		return carrier.NewProviderError(nil, nil, err)
	}

	r.adder.Add(ctx, key, httpErr.Response)

	code := httpErr.Code()
	if isNotFound(code) {
		logger.Debug("number not found by provider")
		metrics.ProviderErrors.WithLabelValues(Provider, codeLabel(code), "false").Inc()
	} else {
		logger.WithError(err).Warn("unexpected provider error")
		metrics.ProviderErrors.WithLabelValues(Provider, codeLabel(code), "true").Inc()
		r.reporter.Report(ctx, err)
	}

	return carrier.NewProviderError(code, httpErr.Response, err)
}

func newLookup(response carrier.Response) (*carrier.Lookup, error) {
	lookup, ok := response.Carrier()
	if !ok {
		return nil, carrier.NewMalformedResponseError(response)
	}

	return &lookup, nil
}

func isNotFound(code interface{}) bool {
	n, ok := numericCode(code)

	return ok && n == codeNotFound
}

// codeLabel keeps the metric cardinality bounded by provider codes
func codeLabel(code interface{}) string {
	n, ok := numericCode(code)
	if !ok {
		return "invalid"
	}

	return strconv.FormatInt(n, 10)
}

// numericCode accepts the code as decoded from JSON or as a numeric string
func numericCode(code interface{}) (int64, bool) {
	switch c := code.(type) {
	case int:
		return int64(c), true
	case int64:
		return c, true
	case float64:
		if c != float64(int64(c)) {
			return 0, false
		}

		return int64(c), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(c), 10, 64)

		return n, err == nil
	default:
		return 0, false
	}
}
