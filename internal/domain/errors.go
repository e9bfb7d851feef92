package domain

import (
	"context"
	"errors"
	"net"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Recipe errors
	ErrMsgNoRecipe         = "item has no crafting recipe"
	ErrMsgSubRecipeFailure = "sub-recipe resolution failed"

	// Price errors
	ErrMsgPriceUnavailable = "no market data"

	// Search errors
	ErrMsgPartialSearchFailure = "some search backends failed"
	ErrMsgTotalSearchFailure   = "all search backends failed"

	// Upstream errors
	ErrMsgTimeout           = "request timed out"
	ErrMsgUpstream          = "upstream request failed"
	ErrMsgMalformedResponse = "malformed upstream response"

	// State errors
	ErrMsgStaleGeneration   = "result superseded by a newer request"
	ErrMsgNoServerSelected  = "no server selected"
	ErrMsgUnknownDatacenter = "unknown datacenter"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("...: %w", domain.ErrXxx) for additional context.
var (
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrNoRecipe         = errors.New(ErrMsgNoRecipe)
	ErrSubRecipeFailure = errors.New(ErrMsgSubRecipeFailure)

	ErrPriceUnavailable = errors.New(ErrMsgPriceUnavailable)

	ErrPartialSearchFailure = errors.New(ErrMsgPartialSearchFailure)
	ErrTotalSearchFailure   = errors.New(ErrMsgTotalSearchFailure)

	ErrTimeout           = errors.New(ErrMsgTimeout)
	ErrUpstream          = errors.New(ErrMsgUpstream)
	ErrMalformedResponse = errors.New(ErrMsgMalformedResponse)

	ErrStaleGeneration   = errors.New(ErrMsgStaleGeneration)
	ErrNoServerSelected  = errors.New(ErrMsgNoServerSelected)
	ErrUnknownDatacenter = errors.New(ErrMsgUnknownDatacenter)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsTimeout reports whether err is, or was caused by, a deadline being exceeded.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
