package cache

import (
	"github.com/patrickmn/go-cache"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
)

type memstore struct {
	store *cache.Cache
}

func newMemStore(cc *config.Cache) *memstore {
	expiry := cc.Expiry
	if expiry == 0 {
		expiry = cache.NoExpiration
	}

	return &memstore{
		store: cache.New(expiry, cc.CleanupInterval),
	}
}

func (m *memstore) get(key string) (carrier.Response, bool, error) {
	entry, exists := m.store.Get(key)
	if !exists {
		return nil, false, nil
	}

	return entry.(carrier.Response), true, nil
}

func (m *memstore) set(key string, response carrier.Response) error {
	m.store.SetDefault(key, response)

	return nil
}

func (m *memstore) close() error {
	m.store.Flush()

	return nil
}
