// Package ratelimit implements fixed-window request counting keyed by an
// opaque identifier, typically an organization member id.
//
// Windows do not slide: a burst straddling two windows can admit up to
// twice the limit in quick succession. That approximation is accepted
// and documented, not a defect.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// Store counts requests per identifier. Implementations must be safe for
// concurrent callers; exceeding the limit is a normal return value, not
// an error.
type Store interface {
	Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) (Result, error)
}
