package errortracking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gitlab.com/gitlab-org/labkit/errortracking"
	"gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

// CaptureOption alias to avoid importing labkit/errortracking in internal packages
type CaptureOption = errortracking.CaptureOption

// WithField alias to avoid importing labkit/errortracking in internal packages
func WithField(key, value string) CaptureOption {
	return errortracking.WithField(key, value)
}

// CaptureErrWithReqAndStackTrace calls labkit's errortracking function and attaches the request, stack trace and any additional fields
func CaptureErrWithReqAndStackTrace(err error, r *http.Request, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithContext(r.Context()),
		errortracking.WithRequest(r),
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}

// CaptureErrWithStackTrace calls labkit's errortracking function and attaches the stack trace and any additional fields
func CaptureErrWithStackTrace(err error, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}

// coder is implemented by errors carrying a provider error code
type coder interface {
	Code() interface{}
}

// Reporter forwards unexpected errors to Sentry
type Reporter struct {
	fields []CaptureOption
}

// NewReporter returns a Reporter attaching fields to every captured error
func NewReporter(fields ...CaptureOption) *Reporter {
	return &Reporter{fields: fields}
}

// Report captures err with the stack trace, the correlation ID of ctx and
// the provider error code when err has one. It never panics.
func (r *Reporter) Report(ctx context.Context, err error) {
	defer func() {
		if p := recover(); p != nil {
			log.ContextLogger(ctx).WithField("panic", p).Error("failed to capture error")
		}
	}()

	metrics.ErrorsReported.Inc()

	opts := append([]CaptureOption{errortracking.WithContext(ctx)}, r.fields...)
	var c coder
	if errors.As(err, &c) && c.Code() != nil {
		opts = append(opts, WithField("provider_code", fmt.Sprint(c.Code())))
	}

	CaptureErrWithStackTrace(err, opts...)
}
