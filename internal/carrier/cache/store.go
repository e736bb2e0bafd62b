package cache

import (
	"context"
	"fmt"

	"gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

// backend is a key-value storage for lookup responses
type backend interface {
	get(key string) (carrier.Response, bool, error)
	set(key string, response carrier.Response) error
	close() error
}

// Store keeps provider responses keyed by provider, country, prefix and
// number. It is safe for concurrent use; concurrent writes of the same key
// are last-write-wins.
type Store struct {
	name    string
	backend backend
}

// New creates the store selected by the cache configuration
func New(cc *config.Cache) (*Store, error) {
	switch cc.Store {
	case config.StoreMemory:
		return newStore(cc.Store, newMemStore(cc)), nil
	case config.StoreLRU:
		return newStore(cc.Store, newLruStore(cc)), nil
	case config.StoreDisk:
		disk, err := newDiskStore(cc)
		if err != nil {
			return nil, err
		}

		return newStore(cc.Store, disk), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrCacheUnknownStore, cc.Store)
	}
}

func newStore(name string, b backend) *Store {
	return &Store{name: name, backend: b}
}

// Pick returns the response cached for key or ErrNoSuchEntry
func (s *Store) Pick(ctx context.Context, key Key) (carrier.Response, error) {
	response, found, err := s.backend.get(key.String())
	if err != nil {
		metrics.CacheRequests.WithLabelValues(s.name, "error").Inc()
		return nil, fmt.Errorf("reading %s cache: %w", s.name, err)
	}

	if !found {
		metrics.CacheRequests.WithLabelValues(s.name, "miss").Inc()
		return nil, ErrNoSuchEntry
	}

	metrics.CacheRequests.WithLabelValues(s.name, "hit").Inc()
	return response, nil
}

// Add stores response under key. A failed write is logged and dropped, the
// next lookup for key will be a miss.
func (s *Store) Add(ctx context.Context, key Key, response carrier.Response) {
	if err := s.backend.set(key.String(), response); err != nil {
		metrics.CacheWrites.WithLabelValues(s.name, "error").Inc()

		log.ContextLogger(ctx).WithError(err).WithFields(log.Fields{
			"store":    s.name,
			"provider": key.Provider,
			"country":  key.Country,
		}).Error("failed to store lookup response")

		return
	}

	metrics.CacheWrites.WithLabelValues(s.name, "ok").Inc()
}

// Close releases the resources held by the store
func (s *Store) Close() error {
	return s.backend.close()
}
