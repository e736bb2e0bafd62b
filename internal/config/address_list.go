package config

import (
	"errors"
	"strings"
)

var errEmptyAddressList = errors.New("at least one address is required")

// AddressList collects listener addresses from a flag that may be repeated.
// One occurrence can also carry several comma separated addresses:
//
//	-listen-api 127.0.0.1:8080 -listen-api [::1]:8080,[::1]:8081
type AddressList []string

func (l *AddressList) String() string {
	return strings.Join(*l, ",")
}

// Set appends every non blank address of value
func (l *AddressList) Set(value string) error {
	var added []string
	for _, addr := range strings.Split(value, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			added = append(added, addr)
		}
	}

	if len(added) == 0 {
		return errEmptyAddressList
	}

	*l = append(*l, added...)
	return nil
}

// Addresses returns a copy of the collected addresses
func (l AddressList) Addresses() []string {
	if len(l) == 0 {
		return nil
	}

	return append([]string(nil), l...)
}
