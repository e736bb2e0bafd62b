package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gitlab.com/phone-carrier/carrier-lookup/internal/api"
	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier/cache"
	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier/twilio"
	cfg "gitlab.com/phone-carrier/carrier-lookup/internal/config"
	"gitlab.com/phone-carrier/carrier-lookup/internal/errortracking"
	"gitlab.com/phone-carrier/carrier-lookup/internal/httpclient"
	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// readinessKey is never written, reading it only proves the cache answers
var readinessKey = cache.NewKey("readiness", "", "", "")

type theApp struct {
	config   *cfg.Config
	store    *cache.Store
	resolver *twilio.Resolver
}

func newApp(config *cfg.Config) (*theApp, error) {
	store, err := cache.New(&config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating lookup cache: %w", err)
	}

	client := httpclient.NewClient(httpclient.Config{
		Timeout:        config.Twilio.HTTPTimeout,
		RateLimit:      config.Twilio.RateLimit,
		RateLimitBurst: config.Twilio.RateLimitBurst,
		Transport: httpclient.NewMeteredRoundTripper(
			httpclient.DefaultTransport,
			twilio.Provider,
			metrics.TwilioAPICallDuration,
			metrics.TwilioAPIReqTotal,
		),
	})

	reporter := errortracking.NewReporter(errortracking.WithField("provider", twilio.Provider))

	return &theApp{
		config:   config,
		store:    store,
		resolver: twilio.NewResolver(&config.Twilio, store, store, client, reporter),
	}, nil
}

func (a *theApp) Close() error {
	return a.store.Close()
}

func (a *theApp) cacheReady(ctx context.Context) error {
	_, err := a.store.Pick(ctx, readinessKey)
	if err == nil || errors.Is(err, cache.ErrNoSuchEntry) {
		return nil
	}

	return err
}

// lookupOnce resolves target and writes the result to w as JSON
func (a *theApp) lookupOnce(ctx context.Context, target *cfg.LookupTarget, w io.Writer) error {
	lookup, err := a.resolver.Resolve(ctx, target.Country, target.Prefix, target.Number)
	if err != nil {
		return err
	}

	return json.NewEncoder(w).Encode(lookup)
}

// Run serves the lookup API and the metrics endpoint until ctx is done or a
// listener fails
func (a *theApp) Run(ctx context.Context) error {
	handler, err := api.WithMiddleware(api.New(a.resolver).Router(a.cacheReady), a.config.Log.Format)
	if err != nil {
		return fmt.Errorf("configuring API handler: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, addr := range a.config.ListenAPI {
		addr := addr
		server := newServer(a.config.Server, handler)

		g.Go(func() error {
			return listenAndServe(ctx, server, addr, a.config.Server.ShutdownTimeout)
		})
	}

	if addr := a.config.General.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := newServer(a.config.Server, mux)

		g.Go(func() error {
			return listenAndServe(ctx, server, addr, a.config.Server.ShutdownTimeout)
		})
	}

	log.WithField("listeners", len(a.config.ListenAPI)).Info("Carrier lookup daemon started")

	return g.Wait()
}
