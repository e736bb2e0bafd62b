package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	labmetrics "gitlab.com/gitlab-org/labkit/metrics"

	"gitlab.com/phone-carrier/carrier-lookup/internal/logging"
)

var (
	metricsOnce    sync.Once
	metricsFactory labmetrics.HandlerFactory
)

func instrument(handler http.Handler) http.Handler {
	metricsOnce.Do(func() {
		metricsFactory = labmetrics.NewHandlerFactory(labmetrics.WithNamespace("carrier_lookup"))
	})

	return metricsFactory(handler)
}

// WithMiddleware wraps handler with panic recovery, correlation IDs, access
// logging and HTTP metrics
func WithMiddleware(handler http.Handler, logFormat string) (http.Handler, error) {
	handler = instrument(handler)

	handler, err := logging.AccessLogger(handler, logFormat, nil)
	if err != nil {
		return nil, err
	}

	handler = correlation.InjectCorrelationID(handler, correlation.WithPropagation())

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(logrus.StandardLogger()),
		handlers.PrintRecoveryStack(true),
	)(handler), nil
}
