package healthcheck

import (
	"context"
	"net/http"

	"gitlab.com/phone-carrier/carrier-lookup/internal/httperrors"
	"gitlab.com/phone-carrier/carrier-lookup/internal/logging"
)

// Check reports whether a dependency of the service is usable
type Check func(ctx context.Context) error

// Handler is serving the application status check. It answers 503 as soon
// as one of checks fails.
func Handler(checks ...Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				logging.LogRequest(r).WithError(err).Warn("readiness check failed")
				httperrors.Serve503(w)
				return
			}
		}

		w.Write([]byte("success\n"))
	})
}
