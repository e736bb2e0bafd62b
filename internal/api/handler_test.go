package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"gitlab.com/phone-carrier/carrier-lookup/internal/api/mock"
	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
)

var lookup = &carrier.Lookup{
	CarrierName:       "Carrier 1",
	MobileCountryCode: "310",
	MobileNetworkCode: "456",
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		resolveTimes int
		lookup       *carrier.Lookup
		err          error
		status       int
		expectedBody string
	}{
		{
			name:         "resolved",
			body:         `{"country":"US","prefix":"+1","number":"5005550006"}`,
			resolveTimes: 1,
			lookup:       lookup,
			status:       http.StatusOK,
			expectedBody: `{"carrier_name":"Carrier 1","mobile_country_code":"310","mobile_network_code":"456"}`,
		},
		{
			name:         "unresolvable",
			body:         `{"country":"US","prefix":"+1","number":"5005550006"}`,
			resolveTimes: 1,
			err:          carrier.NewProviderError(20404, carrier.Response{"code": 20404}, errors.New("not found")),
			status:       http.StatusNotFound,
			expectedBody: `{"status":404,"message":"The carrier of the phone number could not be resolved."}`,
		},
		{
			name:         "unexpected error",
			body:         `{"country":"US","prefix":"+1","number":"5005550006"}`,
			resolveTimes: 1,
			err:          errors.New("boom"),
			status:       http.StatusInternalServerError,
		},
		{
			name:   "invalid JSON",
			body:   `{"country":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing number",
			body:   `{"country":"US","prefix":"+1"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "blank country",
			body:   `{"country":" ","prefix":"+1","number":"5005550006"}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			resolver := mock.NewMockResolver(mockCtrl)
			resolver.EXPECT().
				Resolve(gomock.Any(), "US", "+1", "5005550006").
				Return(tt.lookup, tt.err).
				Times(tt.resolveTimes)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, LookupPath, strings.NewReader(tt.body))

			New(resolver).Router().ServeHTTP(w, r)

			require.Equal(t, tt.status, w.Code)
			require.Contains(t, w.Header().Get("Content-Type"), "application/json")
			if tt.expectedBody != "" {
				require.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRouterRejectsOtherMethods(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	router := New(mock.NewMockResolver(mockCtrl)).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, LookupPath, nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestReadiness(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	ready := true
	check := func(context.Context) error {
		if !ready {
			return errors.New("not ready")
		}

		return nil
	}

	router := New(mock.NewMockResolver(mockCtrl)).Router(check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ReadinessPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success\n", w.Body.String())

	ready = false

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ReadinessPath, nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
