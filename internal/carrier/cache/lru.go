package cache

import (
	"time"

	"github.com/karlseguin/ccache/v2"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
	"gitlab.com/phone-carrier/carrier-lookup/metrics"
)

// getsPerPromote is a value that makes the item to be promoted
// it is taken arbitrarily as a sane value indicating that the item
// was frequently picked
// promotion moves the item to the front of the LRU list
const getsPerPromote = 64

// itemsToPruneDiv is a value that indicates how many items
// need to be pruned on OOM, this prunes 1/16 of items
const itemsToPruneDiv = 16

// ccache has no notion of a permanent item
const neverExpire = 100 * 365 * 24 * time.Hour

type lruStore struct {
	duration time.Duration
	cache    *ccache.Cache
}

func newLruStore(cc *config.Cache) *lruStore {
	duration := cc.Expiry
	if duration == 0 {
		duration = neverExpire
	}

	prune := uint32(cc.MaxEntries / itemsToPruneDiv)
	if prune == 0 {
		prune = 1
	}

	configuration := ccache.Configure()
	configuration.MaxSize(cc.MaxEntries)
	configuration.ItemsToPrune(prune)
	configuration.GetsPerPromote(getsPerPromote)
	configuration.OnDelete(func(*ccache.Item) {
		metrics.CachedEntries.WithLabelValues(config.StoreLRU).Dec()
	})

	return &lruStore{
		duration: duration,
		cache:    ccache.New(configuration),
	}
}

func (l *lruStore) get(key string) (carrier.Response, bool, error) {
	item := l.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, false, nil
	}

	return item.Value().(carrier.Response), true, nil
}

func (l *lruStore) set(key string, response carrier.Response) error {
	metrics.CachedEntries.WithLabelValues(config.StoreLRU).Inc()
	l.cache.Set(key, response, l.duration)

	return nil
}

func (l *lruStore) close() error {
	l.cache.Stop()

	return nil
}
