package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
)

func TestDiskStoreExpiry(t *testing.T) {
	tests := map[string]struct {
		expiry  time.Duration
		elapsed time.Duration
		found   bool
	}{
		"fresh entry": {
			expiry:  time.Hour,
			elapsed: time.Minute,
			found:   true,
		},
		"expired entry": {
			expiry:  time.Hour,
			elapsed: 2 * time.Hour,
			found:   false,
		},
		"no expiry": {
			expiry:  0,
			elapsed: 365 * 24 * time.Hour,
			found:   true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			disk, err := newDiskStore(&config.Cache{Dir: t.TempDir(), Expiry: tc.expiry})
			require.NoError(t, err)
			defer disk.close()

			created := time.Now()
			disk.now = func() time.Time { return created }
			require.NoError(t, disk.set("key", carrierResponse))

			disk.now = func() time.Time { return created.Add(tc.elapsed) }
			response, found, err := disk.get("key")
			require.NoError(t, err)
			require.Equal(t, tc.found, found)

			if tc.found {
				require.Equal(t, carrierResponse, response)
				return
			}

			// expired entries are removed
			disk.now = func() time.Time { return created }
			_, found, err = disk.get("key")
			require.NoError(t, err)
			require.False(t, found)
		})
	}
}

func TestDiskStoreSurvivesReopen(t *testing.T) {
	cc := &config.Cache{Dir: t.TempDir(), Expiry: time.Hour}

	disk, err := newDiskStore(cc)
	require.NoError(t, err)
	require.NoError(t, disk.set("key", carrierResponse))
	require.NoError(t, disk.close())

	disk, err = newDiskStore(cc)
	require.NoError(t, err)
	defer disk.close()

	response, found, err := disk.get("key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, carrierResponse, response)
}

func TestDiskStoreExpireKeepsRewrittenEntry(t *testing.T) {
	disk, err := newDiskStore(&config.Cache{Dir: t.TempDir(), Expiry: time.Hour})
	require.NoError(t, err)
	defer disk.close()

	created := time.Now()
	disk.now = func() time.Time { return created }
	require.NoError(t, disk.set("key", carrier.Response{"code": float64(20404)}))

	stale, closer, err := disk.db.Get([]byte("key"))
	require.NoError(t, err)
	stale = append([]byte(nil), stale...)
	require.NoError(t, closer.Close())

	// a concurrent lookup stores a fresh response before the stale one is removed
	disk.now = func() time.Time { return created.Add(2 * time.Hour) }
	require.NoError(t, disk.set("key", carrierResponse))
	require.NoError(t, disk.expire([]byte("key"), stale))

	response, found, err := disk.get("key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, carrierResponse, response)

	// an entry that was not rewritten is removed
	current, closer, err := disk.db.Get([]byte("key"))
	require.NoError(t, err)
	current = append([]byte(nil), current...)
	require.NoError(t, closer.Close())

	require.NoError(t, disk.expire([]byte("key"), current))

	_, found, err = disk.get("key")
	require.NoError(t, err)
	require.False(t, found)
}
