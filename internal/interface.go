package internal

import (
	"context"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
)

//go:generate mockgen -source=interface.go -destination=api/mock/mock_interface.go -package=mock

// Resolver resolves the carrier of a phone number
type Resolver interface {
	Resolve(ctx context.Context, country, prefix, number string) (*carrier.Lookup, error)
}
