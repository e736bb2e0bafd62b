package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"gitlab.com/phone-carrier/carrier-lookup/internal"
	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/healthcheck"
	"gitlab.com/phone-carrier/carrier-lookup/internal/httperrors"
	"gitlab.com/phone-carrier/carrier-lookup/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// LookupPath accepts lookup requests
	LookupPath = "/v1/lookups"
	// ReadinessPath reports whether the service can serve lookups
	ReadinessPath = "/-/readiness"

	maxRequestSize = 4 << 10
)

// LookupRequest is the body of a lookup request. The number is sent in the
// body so that it never shows up in access logs.
type LookupRequest struct {
	Country string `json:"country"`
	Prefix  string `json:"prefix"`
	Number  string `json:"number"`
}

func (r *LookupRequest) valid() bool {
	return strings.TrimSpace(r.Country) != "" &&
		strings.TrimSpace(r.Prefix) != "" &&
		strings.TrimSpace(r.Number) != ""
}

// Handlers serves carrier lookups over HTTP
type Handlers struct {
	resolver internal.Resolver
}

// New returns Handlers resolving through resolver
func New(resolver internal.Resolver) *Handlers {
	return &Handlers{resolver: resolver}
}

// Router routes the lookup and readiness endpoints
func (h *Handlers) Router(checks ...healthcheck.Check) *mux.Router {
	router := mux.NewRouter()
	router.Handle(LookupPath, http.HandlerFunc(h.Lookup)).Methods(http.MethodPost)
	router.Handle(ReadinessPath, healthcheck.Handler(checks...)).Methods(http.MethodGet)

	return router
}

// Lookup resolves the carrier of the number in the request body. An
// unresolvable lookup is answered with 404.
func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil || json.Unmarshal(body, &req) != nil || !req.valid() {
		logging.LogRequest(r).Debug("invalid lookup request")
		httperrors.Serve400(w)
		return
	}

	lookup, err := h.resolver.Resolve(r.Context(), req.Country, req.Prefix, req.Number)
	if err != nil {
		if errors.Is(err, carrier.ErrUnresolvableLookup) {
			httperrors.Serve404(w)
			return
		}

		httperrors.Serve500WithRequest(w, r, "failed to resolve carrier", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(lookup); err != nil {
		logging.LogRequest(r).WithError(err).Warn("failed to write lookup response")
	}
}
