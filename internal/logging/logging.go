package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	"gitlab.com/gitlab-org/labkit/log"
)

const defaultFormat = "json"

// ConfigureLogging sets up the global logger. Verbose logging enables the
// trace level, which includes every outbound Twilio response.
func ConfigureLogging(format string, verbose bool) error {
	if format == "" {
		format = defaultFormat
	}

	level := "info"
	if verbose {
		level = "trace"
	}

	_, err := log.Initialize(
		log.WithFormatter(format),
		log.WithLogLevel(level),
	)
	return err
}

// newAccessLogger writes access logs through the global logger when it emits
// JSON. Text deployments get a dedicated logger in the combined log format.
func newAccessLogger(format string) (*logrus.Logger, error) {
	if format != "text" {
		return logrus.StandardLogger(), nil
	}

	accessLogger := log.New()
	if _, err := log.Initialize(log.WithLogger(accessLogger), log.WithFormatter("combined")); err != nil {
		return nil, err
	}

	return accessLogger, nil
}

// AccessLogger logs every API request with its correlation ID and the
// fields returned by extraFields. Forwarded client addresses are ignored.
func AccessLogger(handler http.Handler, format string, extraFields log.ExtraFieldsGeneratorFunc) (http.Handler, error) {
	accessLogger, err := newAccessLogger(format)
	if err != nil {
		return nil, err
	}

	return log.AccessLogger(handler,
		log.WithExtraFields(withCorrelationID(extraFields)),
		log.WithAccessLogger(accessLogger),
		log.WithXFFAllowed(func(string) bool { return false }),
	), nil
}

func withCorrelationID(extraFields log.ExtraFieldsGeneratorFunc) log.ExtraFieldsGeneratorFunc {
	return func(r *http.Request) log.Fields {
		var fields log.Fields
		if extraFields != nil {
			fields = extraFields(r)
		}
		if fields == nil {
			fields = log.Fields{}
		}

		fields["correlation_id"] = correlation.ExtractFromContext(r.Context())

		return fields
	}
}

// LogRequest returns a log entry for messages about r. The request body,
// which holds the phone number, is never part of it.
func LogRequest(r *http.Request) *logrus.Entry {
	return log.WithFields(log.Fields{
		"correlation_id": correlation.ExtractFromContext(r.Context()),
		"method":         r.Method,
		"path":           r.URL.Path,
	})
}
