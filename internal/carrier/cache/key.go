package cache

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNoSuchEntry is returned by Pick when nothing is cached for a key
var ErrNoSuchEntry = errors.New("no cached lookup response")

// Key identifies a cached lookup response
type Key struct {
	Provider string
	Country  string
	Prefix   string
	Number   string
}

// NewKey returns the cache key of a provider lookup
func NewKey(provider, country, prefix, number string) Key {
	return Key{Provider: provider, Country: country, Prefix: prefix, Number: number}
}

// String returns the storage key. Every part is escaped so that a separator
// inside a part can not collide with another key.
func (k Key) String() string {
	parts := []string{k.Provider, k.Country, k.Prefix, k.Number}
	for i, part := range parts {
		parts[i] = url.QueryEscape(part)
	}

	return strings.Join(parts, ":")
}
