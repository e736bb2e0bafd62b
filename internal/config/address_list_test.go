package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressListSet(t *testing.T) {
	tests := map[string]struct {
		values  []string
		want    []string
		wantErr bool
	}{
		"repeated flag": {
			values: []string{"127.0.0.1:8080", "[::1]:8080"},
			want:   []string{"127.0.0.1:8080", "[::1]:8080"},
		},
		"comma separated": {
			values: []string{":8080, :8081"},
			want:   []string{":8080", ":8081"},
		},
		"blank items are dropped": {
			values: []string{":8080,, "},
			want:   []string{":8080"},
		},
		"empty value": {
			values:  []string{""},
			wantErr: true,
		},
		"only separators": {
			values:  []string{" , "},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var list AddressList

			var err error
			for _, value := range tt.values {
				if err = list.Set(value); err != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, err, errEmptyAddressList)
				require.Nil(t, list.Addresses())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, list.Addresses())
		})
	}
}

func TestAddressListString(t *testing.T) {
	list := AddressList{":8080", ":8081"}
	require.Equal(t, ":8080,:8081", list.String())

	addrs := list.Addresses()
	addrs[0] = ":9090"
	require.Equal(t, ":8080", list[0])
}
