package carrier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseCarrier(t *testing.T) {
	tests := []struct {
		name     string
		response Response
		expected Lookup
		ok       bool
	}{
		{
			name: "all fields",
			response: Response{
				"carrier": map[string]interface{}{
					"name":                "Carrier 1",
					"mobile_country_code": "310",
					"mobile_network_code": "456",
					"type":                "mobile",
					"error_code":          nil,
				},
			},
			expected: Lookup{CarrierName: "Carrier 1", MobileCountryCode: "310", MobileNetworkCode: "456"},
			ok:       true,
		},
		{
			name:     "nil response",
			response: nil,
		},
		{
			name:     "failure payload",
			response: Response{"code": 20404},
		},
		{
			name:     "carrier is a string",
			response: Response{"carrier": "Carrier 1"},
		},
		{
			name: "numeric mobile codes",
			response: Response{
				"carrier": map[string]interface{}{
					"name":                "Carrier 1",
					"mobile_country_code": float64(310),
					"mobile_network_code": 456,
				},
			},
			expected: Lookup{CarrierName: "Carrier 1", MobileCountryCode: "310", MobileNetworkCode: "456"},
			ok:       true,
		},
		{
			name: "boolean mobile country code",
			response: Response{
				"carrier": map[string]interface{}{
					"name":                "Carrier 1",
					"mobile_country_code": true,
					"mobile_network_code": "456",
				},
			},
		},
		{
			name: "missing mobile network code",
			response: Response{
				"carrier": map[string]interface{}{
					"name":                "Carrier 1",
					"mobile_country_code": "310",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup, ok := tt.response.Carrier()
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, lookup)
		})
	}
}
