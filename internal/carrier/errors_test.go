package carrier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMalformedResponseError(t *testing.T) {
	raw := Response{"carrier": nil}
	err := NewMalformedResponseError(raw)

	require.ErrorIs(t, err, ErrUnresolvableLookup)
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.EqualError(t, err, "unresolvable carrier lookup: response is missing carrier fields")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	require.Equal(t, MalformedResponse, lookupErr.Kind)
	require.Equal(t, raw, lookupErr.Raw)
}

func TestProviderError(t *testing.T) {
	cause := errors.New("unexpected response status")

	tests := []struct {
		name        string
		code        interface{}
		raw         Response
		expectedMsg string
	}{
		{
			name:        "with code",
			code:        float64(20404),
			raw:         Response{"code": float64(20404)},
			expectedMsg: "unresolvable carrier lookup: provider failure with code 20404",
		},
		{
			name:        "without payload",
			expectedMsg: "unresolvable carrier lookup: provider failure: unexpected response status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProviderError(tt.code, tt.raw, cause)

			require.ErrorIs(t, err, ErrUnresolvableLookup)
			require.ErrorIs(t, err, cause)
			require.False(t, errors.Is(err, ErrMalformedResponse))
			require.EqualError(t, err, tt.expectedMsg)

			wrapped := fmt.Errorf("resolving carrier: %w", err)
			require.ErrorIs(t, wrapped, ErrUnresolvableLookup)
		})
	}
}

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "malformed_response", MalformedResponse.String())
	require.Equal(t, "provider_failure", ProviderFailure.String())
	require.Equal(t, "unknown", ErrorKind(42).String())
}
