package carrier

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvableLookup is returned for every lookup that does not end
	// with a complete Lookup
	ErrUnresolvableLookup = errors.New("unresolvable carrier lookup")

	// ErrMalformedResponse means a response did not carry the carrier fields
	ErrMalformedResponse = errors.New("response is missing carrier fields")
)

// ErrorKind tells why a lookup could not be resolved
type ErrorKind int

const (
	// MalformedResponse is a cached or fresh response without carrier fields
	MalformedResponse ErrorKind = iota
	// ProviderFailure is a failed request to the provider
	ProviderFailure
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedResponse:
		return "malformed_response"
	case ProviderFailure:
		return "provider_failure"
	default:
		return "unknown"
	}
}

// LookupError describes an unresolvable lookup. Code and Raw are only set
// for ProviderFailure.
type LookupError struct {
	Kind ErrorKind
	Code interface{}
	Raw  Response
	Err  error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case ProviderFailure:
		if e.Code != nil {
			return fmt.Sprintf("%s: provider failure with code %v", ErrUnresolvableLookup, e.Code)
		}

		return fmt.Sprintf("%s: provider failure: %v", ErrUnresolvableLookup, e.Err)
	default:
		return fmt.Sprintf("%s: %v", ErrUnresolvableLookup, ErrMalformedResponse)
	}
}

// Is makes errors.Is match both ErrUnresolvableLookup and the wrapped cause
func (e *LookupError) Is(target error) bool {
	if target == ErrUnresolvableLookup {
		return true
	}

	return e.Kind == MalformedResponse && target == ErrMalformedResponse
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewMalformedResponseError returns an unresolvable lookup error for a
// response without carrier fields
func NewMalformedResponseError(raw Response) error {
	return &LookupError{Kind: MalformedResponse, Raw: raw, Err: ErrMalformedResponse}
}

// NewProviderError returns an unresolvable lookup error for a failed provider
// request
func NewProviderError(code interface{}, raw Response, err error) error {
	return &LookupError{Kind: ProviderFailure, Code: code, Raw: raw, Err: err}
}
