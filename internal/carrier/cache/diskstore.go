package cache

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	jsoniter "github.com/json-iterator/go"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
	"gitlab.com/phone-carrier/carrier-lookup/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// diskEntry is the value stored in pebble
type diskEntry struct {
	Created  int64            `json:"created"`
	Response carrier.Response `json:"response"`
}

type diskStore struct {
	// mu orders writes with the removal of expired entries
	mu sync.Mutex

	db     *pebble.DB
	expiry time.Duration
	now    func() time.Time
}

func newDiskStore(cc *config.Cache) (*diskStore, error) {
	db, err := pebble.Open(cc.Dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening disk cache in %q: %w", cc.Dir, err)
	}

	return &diskStore{
		db:     db,
		expiry: cc.Expiry,
		now:    time.Now,
	}, nil
}

func (d *diskStore) get(key string) (carrier.Response, bool, error) {
	value, closer, err := d.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	var entry diskEntry
	if err := json.Unmarshal(value, &entry); err != nil {
		return nil, false, fmt.Errorf("decoding cached response: %w", err)
	}

	if d.isExpired(entry) {
		if err := d.expire([]byte(key), value); err != nil {
			return nil, false, err
		}

		return nil, false, nil
	}

	return entry.Response, true, nil
}

func (d *diskStore) set(key string, response carrier.Response) error {
	value, err := json.Marshal(diskEntry{Created: d.now().Unix(), Response: response})
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.db.Set([]byte(key), value, pebble.Sync)
}

// expire removes key unless it was rewritten since stale was read
func (d *diskStore) expire(key, stale []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	rewritten := !bytes.Equal(current, stale)
	closer.Close()
	if rewritten {
		return nil
	}

	return d.db.Delete(key, pebble.NoSync)
}

func (d *diskStore) close() error {
	return d.db.Close()
}

func (d *diskStore) isExpired(entry diskEntry) bool {
	if d.expiry == 0 {
		return false
	}

	return time.Unix(entry.Created, 0).Add(d.expiry).Before(d.now())
}
