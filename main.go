package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/errortracking"

	cfg "gitlab.com/phone-carrier/carrier-lookup/internal/config"
	"gitlab.com/phone-carrier/carrier-lookup/internal/logging"
	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(sentryDSN, sentryEnvironment string) {
	errortracking.Initialize(
		errortracking.WithSentryDSN(sentryDSN),
		errortracking.WithVersion(fmt.Sprintf("%s-%s", VERSION, REVISION)),
		errortracking.WithLoggerName("carrier-lookup"),
		errortracking.WithSentryEnvironment(sentryEnvironment))
}

func appMain() {
	config, err := cfg.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(config.General.ShowVersion, VERSION)

	err = logging.ConfigureLogging(config.Log.Format, config.Log.Verbose)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	if config.Sentry.DSN != "" {
		initErrorReporting(config.Sentry.DSN, config.Sentry.Environment)
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("Carrier Lookup Daemon")

	cfg.LogConfig(config)

	a, err := newApp(config)
	if err != nil {
		fatal(err, "could not create carrier lookup app")
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if target := config.General.Lookup; target != nil {
		if err := a.lookupOnce(ctx, target, os.Stdout); err != nil {
			a.Close()
			fatal(err, "lookup failed")
		}

		return
	}

	if err := a.Run(ctx); err != nil {
		a.Close()
		fatal(err, "carrier lookup daemon failed")
	}
}

func fatal(err error, message string) {
	log.WithError(err).Fatal(message)
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}
